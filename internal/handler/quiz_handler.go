package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lawandcode/lawquiz-api/internal/middleware"
	"github.com/lawandcode/lawquiz-api/internal/service"
)

// Upload cap for question imports.
const maxImportSize = 5 << 20 // 5 MiB

// QuizHandler serves folder, question, discovery and like routes.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new quiz handler.
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// CreateFolderRequest creates a quiz folder.
type CreateFolderRequest struct {
	Title   string `json:"title" binding:"required,max=100"`
	Subject string `json:"subject" binding:"required"`
	Level   string `json:"level" binding:"required"`
}

// RenameFolderRequest renames a folder, addressed by its current title.
type RenameFolderRequest struct {
	Title    string `json:"title" binding:"required"`
	NewTitle string `json:"new_title" binding:"required,max=100"`
}

// VisibilityRequest flips a folder between private and public.
type VisibilityRequest struct {
	Title      string `json:"title" binding:"required"`
	Visibility string `json:"visibility" binding:"required,oneof=private public"`
}

// DeleteFolderRequest deletes a folder by title.
type DeleteFolderRequest struct {
	Title string `json:"title" binding:"required"`
}

// QuestionRequest adds or edits a question inside a folder.
type QuestionRequest struct {
	FolderTitle string `json:"folder_title" binding:"required"`
	Prompt      string `json:"prompt" binding:"required,max=500"`
	Answer      string `json:"answer" binding:"required,max=250"`
}

// CreateFolder handles POST /api/quizzes.
func (h *QuizHandler) CreateFolder(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	folder, err := h.quizService.CreateFolder(userID, req.Title, req.Subject, req.Level)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, folder)
}

// ListFolders handles GET /api/quizzes, with optional ?q= title filter.
func (h *QuizHandler) ListFolders(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	folders, err := h.quizService.SearchFolders(userID, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"folders": folders})
}

// RenameFolder handles PUT /api/quizzes/title.
func (h *QuizHandler) RenameFolder(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	var req RenameFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	if err := h.quizService.RenameFolder(userID, req.Title, req.NewTitle); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Folder renamed"})
}

// SetVisibility handles PUT /api/quizzes/visibility.
func (h *QuizHandler) SetVisibility(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	var req VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	if err := h.quizService.SetVisibility(userID, req.Title, req.Visibility); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Visibility updated"})
}

// DeleteFolder handles DELETE /api/quizzes.
func (h *QuizHandler) DeleteFolder(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	var req DeleteFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	if err := h.quizService.DeleteFolder(userID, req.Title); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Folder deleted"})
}

// PublicListing handles GET /api/quizzes/public?page=N&q=term.
func (h *QuizHandler) PublicListing(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	var listing *service.PublicListing
	var err error
	if query := c.Query("q"); query != "" {
		listing, err = h.quizService.SearchPublic(query, page)
	} else {
		listing, err = h.quizService.PublicListing(page)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// PlayQuestions handles GET /api/quizzes/play?author=X&title=Y.
func (h *QuizHandler) PlayQuestions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	questions, err := h.quizService.GetPlayQuestions(userID, c.Query("author"), c.Query("title"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// AddQuestion handles POST /api/quizzes/questions.
func (h *QuizHandler) AddQuestion(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	question, err := h.quizService.AddQuestion(userID, req.FolderTitle, req.Prompt, req.Answer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion handles PUT /api/quizzes/questions/:id.
func (h *QuizHandler) UpdateQuestion(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	questionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id", "error_type": "validation"})
		return
	}

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	if err := h.quizService.UpdateQuestion(userID, req.FolderTitle, uint(questionID), req.Prompt, req.Answer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question updated"})
}

// DeleteQuestion handles DELETE /api/quizzes/questions/:id?folder_title=X.
func (h *QuizHandler) DeleteQuestion(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	questionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id", "error_type": "validation"})
		return
	}

	if err := h.quizService.DeleteQuestion(userID, c.Query("folder_title"), uint(questionID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}

// Like handles POST /api/quizzes/:id/like.
func (h *QuizHandler) Like(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	folderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz id", "error_type": "validation"})
		return
	}

	counted, err := h.quizService.LikeQuiz(userID, uint(folderID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counted": counted})
}

// ImportQuestions handles POST /api/quizzes/import (multipart form with
// folder_title and an .xlsx file).
func (h *QuizHandler) ImportQuestions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	folderTitle := c.PostForm("folder_title")
	if folderTitle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "folder_title is required", "error_type": "validation"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required", "error_type": "validation"})
		return
	}
	if fileHeader.Size > maxImportSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large", "error_type": "validation"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	inserted, err := h.quizService.ImportQuestions(userID, folderTitle, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": inserted})
}
