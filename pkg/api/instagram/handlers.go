package instagram

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"instagram-profile-compare/pkg/analysis"
	"instagram-profile-compare/pkg/external"
	"instagram-profile-compare/pkg/metrics"
	"instagram-profile-compare/pkg/report"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "session_id"

	sessionMaxAge = 24 * 60 * 60
)

// Analyzer is the analysis service consumed by the handlers
type Analyzer interface {
	Analyze(ctx context.Context, sessionID, usernameA, usernameB string) (*analysis.Analysis, error)
	Profile(ctx context.Context, username string) (*metrics.Profile, error)
	Offer() report.Offer
}

// Handler serves the Instagram comparison endpoints
type Handler struct {
	analyzer     Analyzer
	fetchTimeout time.Duration
}

// NewHandler creates a new handler; fetchTimeout bounds each fetch-and-compare
func NewHandler(analyzer Analyzer, fetchTimeout time.Duration) *Handler {
	return &Handler{analyzer: analyzer, fetchTimeout: fetchTimeout}
}

// CompareHandler fetches and compares two profiles, once per session
// POST /api/v1/instagram/compare
func (h *Handler) CompareHandler(c *gin.Context) {
	sessionID := resolveSession(c)

	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request format"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.analyzer.Analyze(ctx, sessionID, req.Username1, req.Username2)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, CompareResponse{
		SessionID: sessionID,
		Analysis:  result,
		Meta: ResponseMeta{
			ProcessedAt: time.Now(),
			Source:      "rocketapi",
		},
	})
}

// GetProfileHandler returns a single fetched profile
// GET /api/v1/instagram/user/:username
func (h *Handler) GetProfileHandler(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username is required"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	profile, err := h.analyzer.Profile(ctx, username)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Profile: profile,
		Meta: ResponseMeta{
			ProcessedAt: time.Now(),
			Source:      "rocketapi",
		},
	})
}

// OfferHandler returns the paid report call-to-action
// GET /api/v1/report/offer
func (h *Handler) OfferHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.analyzer.Offer())
}

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.fetchTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.fetchTimeout)
}

// resolveSession reads the session id from the header or cookie, issuing a
// new one when missing or malformed, and echoes it back to the client
func resolveSession(c *gin.Context) string {
	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		sessionID, _ = c.Cookie(SessionCookie)
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		sessionID = uuid.NewString()
	}

	c.Header(SessionHeader, sessionID)
	c.SetCookie(SessionCookie, sessionID, sessionMaxAge, "/", "", false, true)
	return sessionID
}

func writeError(c *gin.Context, err error) {
	var (
		undefined    metrics.UndefinedEngagementError
		insufficient metrics.InsufficientDataError
		fetchErr     *external.FetchError
	)

	switch {
	case errors.Is(err, analysis.ErrMissingUsername):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "please fill in both usernames"})
	case errors.Is(err, analysis.ErrAnalysisAlreadyDone):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.As(err, &undefined):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "profile " + undefined.Profile + " has no followers, engagement rate cannot be computed",
			Profile: undefined.Profile,
			Reason:  "no_followers",
		})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "profile " + insufficient.Profile + " has no posts to analyse",
			Profile: insufficient.Profile,
			Reason:  "no_posts",
		})
	case errors.As(err, &fetchErr):
		status := http.StatusBadGateway
		if fetchErr.Reason == external.ReasonNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{
			Error:   "failed to fetch Instagram profile " + fetchErr.Username,
			Profile: fetchErr.Username,
			Reason:  string(fetchErr.Reason),
		})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "profile fetch timed out"})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
