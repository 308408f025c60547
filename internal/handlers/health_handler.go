package handlers

import (
	"net/http"

	"golf-backend/utils/response"
)

func Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{"status": "up"}, "")
}
