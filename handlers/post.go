package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adminpanel/models"
	"adminpanel/store"
)

type EventDetailsRequest struct {
	Location  string `json:"location"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type PromoDetailsRequest struct {
	Discount   int    `json:"discount"`
	ValidUntil string `json:"validUntil"`
}

type PostRequest struct {
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	ImageURL       string               `json:"imageUrl"`
	Type           int                  `json:"type"`
	AuthorPhone    string               `json:"authorPhone"`
	PostValidUntil string               `json:"postValidUntil"`
	PromotedUntil  string               `json:"promotedUntil"`
	EventDetails   *EventDetailsRequest `json:"eventDetails"`
	PromoDetails   *PromoDetailsRequest `json:"promoDetails"`
}

// filterPosts applies the case-insensitive substring search over title and
// description plus the optional type filter. typeFilter is "" or "all" for
// no filtering; a value that is not a number is ignored the same way, since
// the dashboard only ever sends the fixed dropdown values.
func filterPosts(posts []models.Post, term, typeFilter string) []models.Post {
	term = strings.ToLower(term)

	wantType := -1
	if typeFilter != "" && typeFilter != "all" {
		if t, err := strconv.Atoi(typeFilter); err == nil {
			wantType = t
		}
	}

	result := []models.Post{}
	for _, p := range posts {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		if wantType >= 0 && p.Type != wantType {
			continue
		}
		result = append(result, p)
	}
	return result
}

func (h *Handlers) ListPosts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	posts, err := h.Posts.ListAll(ctx)
	if err != nil {
		log.Printf("ListPosts error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, filterPosts(posts, c.Query("q"), c.Query("type")))
}

func (h *Handlers) postFromRequest(req *PostRequest) *models.Post {
	post := &models.Post{
		Title:          req.Title,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		Type:           req.Type,
		AuthorPhone:    req.AuthorPhone,
		PostValidUntil: parseDate(req.PostValidUntil),
		PromotedUntil:  parseDate(req.PromotedUntil),
	}
	if req.EventDetails != nil {
		post.EventDetails = &models.EventDetails{
			Location:  req.EventDetails.Location,
			StartTime: parseDate(req.EventDetails.StartTime),
			EndTime:   parseDate(req.EventDetails.EndTime),
		}
	}
	if req.PromoDetails != nil {
		post.PromoDetails = &models.PromoDetails{
			Discount:   req.PromoDetails.Discount,
			ValidUntil: parseDate(req.PromoDetails.ValidUntil),
		}
	}
	return post
}

func (h *Handlers) CreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validation happens before any write.
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and description are required"})
		return
	}
	if !models.ValidType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown post type"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	now := primitive.NewDateTimeFromTime(h.now())
	post := h.postFromRequest(&req)
	post.AuthorID = c.GetString("userId")
	post.Created = now
	post.Updated = now
	post.LikeList = []string{}
	post.NormalizeForCreate()

	created, err := h.Posts.CreateOne(ctx, post)
	if err != nil {
		log.Printf("CreatePost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handlers) UpdatePost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown post type"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	post := h.postFromRequest(&req)
	post.Updated = primitive.NewDateTimeFromTime(h.now())
	post.NormalizeForUpdate()

	updated, err := h.Posts.ReplaceOne(ctx, id, post)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		log.Printf("UpdatePost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handlers) DeletePost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	err = h.Posts.DeleteOne(ctx, id)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		log.Printf("DeletePost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
