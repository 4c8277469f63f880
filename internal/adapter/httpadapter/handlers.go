package httpadapter

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
)

type bulletinResponse struct {
	OK   bool        `json:"ok"`
	Lang domain.Lang `json:"lang"`
	domain.BulletinPayload
}

func (s *Server) handleBulletin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	res, err := s.deps.Reader.Read(r.Context(), r.URL.Query().Get("lang"))
	var malformed *domain.MalformedCacheObjectError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, bulletinResponse{OK: true, Lang: res.Lang, BulletinPayload: res.Payload})
	case errors.Is(err, domain.ErrCacheMiss):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "cache_empty", Lang: res.Lang})
	case errors.As(err, &malformed):
		s.logger.Error("cached bulletin is malformed", "lang", res.Lang, "key", malformed.Key, "error", err)
		writeError(w, http.StatusBadGateway, "cache_malformed")
	default:
		s.logger.Error("read cached bulletin", "lang", res.Lang, "error", err)
		writeError(w, http.StatusBadGateway, "cache_unavailable")
	}
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	if !s.deps.Refresher.Authorize(r) {
		s.logger.Warn("unauthorized refresh attempt", "remote", r.RemoteAddr, "user_agent", r.UserAgent())
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	report := s.deps.Refresher.Refresh(r.Context())
	status := http.StatusOK
	if !report.OK {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, report)
}

func (s *Server) handleBora(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	charts, err := s.deps.Forecaster.Forecast(r.Context())
	if err != nil {
		s.logger.Error("bora forecast", "error", err)
		writeError(w, http.StatusBadGateway, "forecast_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, charts)
}

func (s *Server) handleObject(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	info, err := s.deps.Objects.Head(r.Context(), key)
	if errors.Is(err, domain.ErrCacheMiss) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error("head object", "key", key, "error", err)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	body, err := s.deps.Objects.Open(r.Context(), info)
	if err != nil {
		s.logger.Error("open object", "key", key, "error", err)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", info.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.Header().Set("Last-Modified", info.UpdatedAt.UTC().Format(http.TimeFormat))
	_, _ = w.Write(body)
}
