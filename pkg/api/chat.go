package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gigcompliance/anj-resolver/pkg/chat"
	"github.com/gigcompliance/anj-resolver/pkg/locale"
	"github.com/gigcompliance/anj-resolver/pkg/sheet"
)

// chatRequest is one turn of the disambiguation dialog.
type chatRequest struct {
	SessionID string `json:"session_id"`
	Sport     string `json:"sport"`
	Message   string `json:"message"`
	Lang      string `json:"lang,omitempty"`
	Threshold int    `json:"threshold,omitempty"`
}

type chatOption struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Score    int    `json:"score"`
}

type chatResponse struct {
	SessionID string           `json:"session_id"`
	State     string           `json:"state"`
	Found     bool             `json:"found"`
	Message   string           `json:"message,omitempty"`
	Options   []chatOption     `json:"options,omitempty"`
	Verdict   *verdictResponse `json:"verdict,omitempty"`
}

// UI strings per answer language. Verdict values themselves go through
// the locale tables.
var chatMessages = map[string]map[string]string{
	"fr": {
		"not_found":   "Compétition non reconnue",
		"choose":      "Plusieurs compétitions correspondent, choisissez un numéro",
		"none_option": "Aucune de ces propositions",
		"bad_choice":  "Choix invalide",
	},
	"en": {
		"not_found":   "Competition not recognised",
		"choose":      "Several competitions match, pick a number",
		"none_option": "None of these options",
		"bad_choice":  "Invalid choice",
	},
	"es": {
		"not_found":   "Competición no reconocida",
		"choose":      "Varias competiciones coinciden, elija un número",
		"none_option": "Ninguna de estas opciones",
		"bad_choice":  "Elección no válida",
	},
}

func chatMsg(lang, key string) string {
	if m, ok := chatMessages[lang]; ok {
		return m[key]
	}
	return chatMessages["fr"][key]
}

type chatHandler struct {
	reg      *sheet.Registry
	sessions *chat.Store
}

func newChatHandler(reg *sheet.Registry, sessions *chat.Store) *chatHandler {
	return &chatHandler{reg: reg, sessions: sessions}
}

func (c *chatHandler) handle(req *chatRequest) (*chatResponse, int) {
	if req.SessionID == "" {
		return &chatResponse{Message: "missing session_id"}, http.StatusBadRequest
	}
	lang := req.Lang
	if !locale.Supported(lang) {
		lang = locale.Langs[0]
	}

	sess := c.sessions.Session(req.SessionID)
	msg := strings.TrimSpace(req.Message)

	if sess.State() == chat.StateAwaitingChoice {
		sport := sess.Sport
		if n, err := strconv.Atoi(msg); err == nil {
			if n == 0 {
				c.sessions.Reject(req.SessionID)
				return c.notFound(req.SessionID, lang), http.StatusOK
			}
			m, err := c.sessions.Choose(req.SessionID, n)
			if err != nil {
				return &chatResponse{
					SessionID: req.SessionID,
					State:     chat.StateIdle.String(),
					Message:   chatMsg(lang, "bad_choice"),
				}, http.StatusOK
			}
			return c.verdictFor(req.SessionID, sport, m.Name, m.Category, lang)
		}
		if isRejection(msg) {
			c.sessions.Reject(req.SessionID)
			return c.notFound(req.SessionID, lang), http.StatusOK
		}
		// Anything else starts a fresh query.
		c.sessions.Reject(req.SessionID)
	}

	sport := req.Sport
	if sport == "" {
		return &chatResponse{SessionID: req.SessionID, Message: "missing sport"}, http.StatusBadRequest
	}
	if msg == "" {
		return &chatResponse{SessionID: req.SessionID, Message: "missing message"}, http.StatusBadRequest
	}

	matches, err := c.reg.Resolve(sport, msg, req.Threshold)
	if err != nil {
		return &chatResponse{SessionID: req.SessionID, Message: err.Error()}, http.StatusBadRequest
	}

	switch len(matches) {
	case 0:
		return c.notFound(req.SessionID, lang), http.StatusOK
	case 1:
		return c.verdictFor(req.SessionID, sport, matches[0].Name, matches[0].Category, lang)
	default:
		c.sessions.Offer(req.SessionID, sport, lang, matches)
		options := make([]chatOption, 0, len(matches)+1)
		for i, m := range matches {
			options = append(options, chatOption{
				Index:    i + 1,
				Name:     m.Name,
				Category: m.Category,
				Score:    m.Score,
			})
		}
		options = append(options, chatOption{Index: 0, Name: chatMsg(lang, "none_option")})
		return &chatResponse{
			SessionID: req.SessionID,
			State:     chat.StateAwaitingChoice.String(),
			Found:     true,
			Message:   chatMsg(lang, "choose"),
			Options:   options,
		}, http.StatusOK
	}
}

func (c *chatHandler) verdictFor(sessionID, sport, name, category, lang string) (*chatResponse, int) {
	v, err := c.reg.Verdict(sport, name, category, "")
	if err != nil {
		return c.notFound(sessionID, lang), http.StatusOK
	}
	lv := localizeVerdict(v, lang)
	return &chatResponse{
		SessionID: sessionID,
		State:     chat.StateIdle.String(),
		Found:     true,
		Verdict:   &lv,
	}, http.StatusOK
}

func (c *chatHandler) notFound(sessionID, lang string) *chatResponse {
	return &chatResponse{
		SessionID: sessionID,
		State:     chat.StateIdle.String(),
		Found:     false,
		Message:   chatMsg(lang, "not_found"),
	}
}

func isRejection(msg string) bool {
	switch strings.ToLower(msg) {
	case "none", "aucune", "aucun", "ninguna", "no", "non":
		return true
	}
	return false
}
