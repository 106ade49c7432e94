package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chxlky/trello-gchat-notify/internal/board"
	"github.com/chxlky/trello-gchat-notify/internal/notify"
)

func (h *Handler) GetBoard(c *gin.Context) {
	h.respondBoard(c, c.Param("boardId"))
}

// GetDefaultBoard serves the board configured with trello.board_id.
func (h *Handler) GetDefaultBoard(c *gin.Context) {
	if h.DefaultBoardID == "" {
		abort(c, http.StatusNotFound, "No default board configured")
		return
	}
	h.respondBoard(c, h.DefaultBoardID)
}

func (h *Handler) respondBoard(c *gin.Context, boardID string) {
	b, err := h.Board.GetBoard(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, notify.NewUpstreamError(err))
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetLists returns the open lists of a board with their cards. With ?q= the
// cards are narrowed by board.Search; titles, descriptions and labels toggle
// the searched fields and all default to true.
func (h *Handler) GetLists(c *gin.Context) {
	lists, err := h.Board.GetLists(c.Request.Context(), c.Param("boardId"))
	if err != nil {
		respondError(c, notify.NewUpstreamError(err))
		return
	}

	q, ok := c.GetQuery("q")
	if !ok {
		c.JSON(http.StatusOK, lists)
		return
	}

	opts := board.DefaultSearchOptions()
	opts.Titles = queryBool(c, "titles", opts.Titles)
	opts.Descriptions = queryBool(c, "descriptions", opts.Descriptions)
	opts.Labels = queryBool(c, "labels", opts.Labels)

	c.JSON(http.StatusOK, board.Search(lists, q, opts))
}

func queryBool(c *gin.Context, key string, def bool) bool {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}
