package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"DomainCheck/domain"
)

// Checker 是域名解析入口，只有输入校验错误会返回 error。
type Checker interface {
	Check(ctx context.Context, raw string) (domain.CheckResult, error)
}

// Server 提供查询 API：GET /check?domain=xxx 和 GET /health。
type Server struct {
	Checker Checker
}

func NewServer(checker Checker) *Server {
	return &Server{Checker: checker}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/check", s.handleCheck)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	raw := r.URL.Query().Get("domain")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "domain query parameter is required"})
		return
	}

	result, err := s.Checker.Check(r.Context(), raw)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFormat) || errors.Is(err, domain.ErrInvalidLabel) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		// 解析层保证其余失败都折算成结果，这里兜底。
		log.Printf("[http] check_failed domain=%s err=%v", raw, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[http] encode_failed err=%v", err)
	}
}
