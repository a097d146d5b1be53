package repository

// LikeRepository defines persistence operations for quiz folder likes.
type LikeRepository interface {
	// Like records the (user, folder) pair and bumps the folder's counter.
	// A repeat like from the same user is a no-op and reports false.
	Like(userID, folderID uint) (bool, error)
}
