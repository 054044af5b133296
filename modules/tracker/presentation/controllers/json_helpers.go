package controllers

import (
	"net/http"

	"github.com/VishnuMohan31/Worky-sub000/pkg/httpapi"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	_ = httpapi.WriteJSON(w, status, payload)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	_ = httpapi.WriteError(w, status, code, message, nil)
}

func writeAPIErrorMeta(w http.ResponseWriter, status int, code, message string, meta map[string]string) {
	_ = httpapi.WriteError(w, status, code, message, meta)
}
