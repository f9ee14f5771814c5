package helpers

import (
	"encoding/json"
	"net/http"
	"staffhub/internal/apperrors"
)

type Response struct {
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	Token     string      `json:"token,omitempty"`
	Results   *int        `json:"results,omitempty"`
	Document  interface{} `json:"document,omitempty"`
	Documents interface{} `json:"documents,omitempty"`
}

func write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func Document(w http.ResponseWriter, status int, doc interface{}) {
	write(w, status, Response{Status: "success", Document: doc})
}

func Documents(w http.ResponseWriter, status int, count int, docs interface{}) {
	write(w, status, Response{Status: "success", Results: &count, Documents: docs})
}

// Token отвечает токеном и документом (хеш пароля в документ не сериализуется).
func Token(w http.ResponseWriter, status int, token string, doc interface{}) {
	write(w, status, Response{Status: "success", Token: token, Document: doc})
}

func Message(w http.ResponseWriter, status int, msg string) {
	write(w, status, Response{Status: "success", Message: msg})
}

func Error(w http.ResponseWriter, status int, errMsg string) {
	write(w, status, Response{Status: "error", Message: errMsg})
}

// ErrorFrom переводит типизированную ошибку сервиса в HTTP-ответ.
func ErrorFrom(w http.ResponseWriter, err error) {
	Error(w, apperrors.StatusCode(err), err.Error())
}
