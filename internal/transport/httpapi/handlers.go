package httpapi

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/franvarela/lorobot/internal/core"
)

const defaultMessageLimit = 100

func (s *Server) getStats(c *gin.Context) {
	stats, err := s.engine.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) getPatterns(c *gin.Context) {
	patterns, err := s.engine.Patterns(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if patterns == nil {
		patterns = []core.Pattern{}
	}
	c.JSON(http.StatusOK, patterns)
}

func (s *Server) getMatch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	res, err := s.engine.FindBestMatch(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if res == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no pattern matches the query"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) getMessages(c *gin.Context) {
	limit := defaultMessageLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	messages, err := s.engine.Messages(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if messages == nil {
		messages = []core.StoredMessage{}
	}
	c.JSON(http.StatusOK, messages)
}

func (s *Server) exportPatternsJSON(c *gin.Context) {
	patterns, err := s.engine.Patterns(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if patterns == nil {
		patterns = []core.Pattern{}
	}
	c.Header("Content-Disposition", `attachment; filename="patterns.json"`)
	c.JSON(http.StatusOK, patterns)
}

func (s *Server) exportMessagesCSV(c *gin.Context) {
	messages, err := s.engine.Messages(c.Request.Context(), defaultMessageLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="messages.csv"`)
	c.Header("Content-Type", "text/csv")

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"id", "sender", "chat_id", "text", "timestamp", "is_question", "is_answer"})
	for _, m := range messages {
		_ = w.Write([]string{
			strconv.FormatInt(m.ID, 10),
			m.Sender,
			m.ChatID,
			m.Text,
			m.Timestamp.Format(time.RFC3339),
			strconv.FormatBool(m.IsQuestion),
			strconv.FormatBool(m.IsAnswer),
		})
	}
	w.Flush()
}
