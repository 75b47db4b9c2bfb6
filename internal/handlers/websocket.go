package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	apperrors "github.com/itimpact/spendx/internal/errors"
	"github.com/itimpact/spendx/internal/logger"
	"github.com/itimpact/spendx/internal/models"
	"github.com/itimpact/spendx/internal/services"
)

const writeWait = 10 * time.Second

// FeedMessage is one frame of the summary feed.
type FeedMessage struct {
	Type      string                    `json:"type"` // "summary" or "error"
	Summary   *models.InvestmentSummary `json:"summary,omitempty"`
	Error     *apperrors.AppError       `json:"error,omitempty"`
	Timestamp time.Time                 `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboard is served from another origin in development
	},
}

// SummaryFeed pushes a user's investment summary over a websocket.
type SummaryFeed struct {
	investments services.InvestmentSummaryServicer
	interval    time.Duration
}

func NewSummaryFeed(investments services.InvestmentSummaryServicer, interval time.Duration) *SummaryFeed {
	return &SummaryFeed{investments: investments, interval: interval}
}

// Handle serves GET /ws/investment?userId=. The first frame is sent right
// away, then one every interval until the client goes away or a query fails.
func (f *SummaryFeed) Handle(c *gin.Context) {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Get().Warnw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Reading is only used to notice the client closing.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	log := logger.Get()
	log.Debugw("summary feed opened", "user_id", userID)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		if !f.push(ctx, conn, userID) {
			return
		}

		select {
		case <-ctx.Done():
			log.Debugw("summary feed closed", "user_id", userID)
			return
		case <-ticker.C:
		}
	}
}

// push sends one frame and reports whether the feed should continue.
func (f *SummaryFeed) push(ctx context.Context, conn *websocket.Conn, userID int64) bool {
	msg := FeedMessage{Timestamp: time.Now().UTC()}

	summary, err := f.investments.GetInvestmentSummary(ctx, userID)
	var appErr *apperrors.AppError
	switch {
	case err == nil:
		msg.Type = "summary"
		msg.Summary = summary
	case errors.Is(err, apperrors.ErrSummaryNotFound) && errors.As(err, &appErr):
		msg.Type = "error"
		msg.Error = appErr
	default:
		if ctx.Err() == nil {
			logger.Get().Errorw("summary feed query failed", "user_id", userID, "error", err)
		}
		msg.Type = "error"
		msg.Error = apperrors.ErrInternalServer
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteJSON(msg)
		return false
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		logger.Get().Debugw("websocket write failed", "user_id", userID, "error", err)
		return false
	}
	return true
}
