package http

import (
	"context"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
)

const confirmHeader = "X-Confirm"

// requestConfirmer answers a delete prompt from the request itself:
// ?confirm=true or an X-Confirm header. The last prompt is kept so a
// declined delete can echo it back.
type requestConfirmer struct {
	confirmed bool

	mu     sync.Mutex
	prompt string
}

func newRequestConfirmer(ctx *gin.Context) *requestConfirmer {
	raw := ctx.Query("confirm")
	if raw == "" {
		raw = ctx.GetHeader(confirmHeader)
	}
	confirmed, _ := strconv.ParseBool(raw)
	return &requestConfirmer{confirmed: confirmed}
}

func (r *requestConfirmer) Confirm(_ context.Context, prompt string) bool {
	r.mu.Lock()
	r.prompt = prompt
	r.mu.Unlock()
	return r.confirmed
}

func (r *requestConfirmer) Prompt() string {
	if r == nil {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prompt
}
