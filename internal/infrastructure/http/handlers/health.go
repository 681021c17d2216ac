package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/hiyoshi/pos-register/internal/domain/register"
	"github.com/hiyoshi/pos-register/internal/domain/scanner"
	"github.com/hiyoshi/pos-register/internal/infrastructure/http/response"
	"github.com/hiyoshi/pos-register/internal/pkg/logger"
)

type HealthHandler struct {
	session    *register.Session
	controller *scanner.Controller
	log        *logger.Logger
	startTime  time.Time
}

func NewHealthHandler(session *register.Session, controller *scanner.Controller, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		session:    session,
		controller: controller,
		log:        log,
		startTime:  time.Now().UTC(),
	}
}

type MemoryMetrics struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"total_alloc"`
	Sys        uint64 `json:"sys"`
	NumGC      uint32 `json:"num_gc"`
}

type HealthData struct {
	App        string        `json:"app"`
	Session    string        `json:"session"`
	Scanner    string        `json:"scanner"`
	Uptime     string        `json:"uptime"`
	Memory     MemoryMetrics `json:"memory"`
	Goroutines int           `json:"goroutines"`
}

func (h *HealthHandler) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionStatus := "PENDING"
		if _, ok := h.session.TransactionID(); ok {
			sessionStatus = "OPEN"
		}

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		data := HealthData{
			App:     "UP",
			Session: sessionStatus,
			Scanner: h.controller.State().String(),
			Uptime:  time.Since(h.startTime).String(),
			Memory: MemoryMetrics{
				Alloc:      mem.Alloc,
				TotalAlloc: mem.TotalAlloc,
				Sys:        mem.Sys,
				NumGC:      mem.NumGC,
			},
			Goroutines: runtime.NumGoroutine(),
		}

		response.WriteSuccess(w, data)
	}
}
