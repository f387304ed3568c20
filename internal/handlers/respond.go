package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"AuthKit/internal/service"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeError отдаёт ошибку сервиса как {"detail": ...}; прочие ошибки
// логируются и скрываются за 500.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, err error) {
	var se *service.Error
	if errors.As(err, &se) {
		writeDetail(w, se.Status, se.Detail)
		return
	}
	logger.Errorw("request failed", "error", err)
	writeDetail(w, http.StatusInternalServerError, "Internal server error")
}

// decode читает JSON-тело запроса; пустые обязательные поля проверяет вызывающий.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body.")
		return false
	}
	return true
}

func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
