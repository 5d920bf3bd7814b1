package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vozciudadana/civic-core/internal/api/metrics"
	"github.com/vozciudadana/civic-core/internal/core/ports"
)

type PostHandler struct {
	content    ports.ContentService
	moderation ports.ModerationService
}

func NewPostHandler(content ports.ContentService, moderation ports.ModerationService) *PostHandler {
	return &PostHandler{content: content, moderation: moderation}
}

// Create publishes a post in the pending state.
//
// @Summary      Create post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post"
// @Success      201   {object}  domain.Post
// @Failure      401   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /v1/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	author, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req createPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.content.CreatePost(c.Request().Context(), ports.CreatePostInput{
		AuthorNationalID: author,
		Title:            req.Title,
		Content:          req.Content,
		Kind:             req.Kind,
		Anonymous:        req.Anonymous,
	})
	if err != nil {
		return err
	}
	if post.Anonymous {
		post.AuthorID = ""
	}
	return c.JSON(http.StatusCreated, post)
}

// Comment adds a comment to a post.
//
// @Summary      Create comment
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Post ID"
// @Param        body  body      createCommentRequest  true  "Comment"
// @Success      201   {object}  domain.Comment
// @Failure      404   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /v1/posts/{id}/comments [post]
func (h *PostHandler) Comment(c echo.Context) error {
	author, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req createCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.content.CreateComment(c.Request().Context(), ports.CreateCommentInput{
		AuthorNationalID: author,
		PostID:           c.Param("id"),
		ParentID:         req.ParentID,
		Text:             req.Text,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// SetState moves a post through moderation and settles its author's XP.
//
// @Summary      Set post state
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Post ID"
// @Param        body  body      setStateRequest  true  "New state"
// @Success      200   {object}  stateChangeResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /v1/posts/{id} [put]
func (h *PostHandler) SetState(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req setStateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.moderation.SetState(c.Request().Context(), ports.SetStateInput{
		PostID: c.Param("id"),
		State:  req.State,
		Actor:  actor,
	})
	if err != nil {
		return err
	}

	if res.Changed {
		metrics.ModerationTransitionsTotal.WithLabelValues(string(res.From), string(res.To)).Inc()
		metrics.ObserveXP("moderation", res.XPDelta)
	}
	return c.JSON(http.StatusOK, toStateChangeResponse(res))
}
