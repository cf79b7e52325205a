package server

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/scholara/portal/gateway"
)

// ChatbotPageData contains data for rendering the AI assistant page
type ChatbotPageData struct {
	AppName       string
	FullName      string
	AICallsServed int
	Error         string

	// One of the two result sections is populated after a submission.
	Translation *gateway.Translation
	Summary     *gateway.Summary

	// Declined carries the assistant's own refusal text and optional
	// remediation suggestion. It renders as a notice, not a failure.
	DeclinedReason     string
	DeclinedSuggestion string
}

// ChatbotPageHandler renders the AI assistant landing page
func (s *Server) ChatbotPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("chatbot.html")
	if err != nil {
		panic("Failed to parse chatbot template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		store := s.sessionStore(r)

		data := ChatbotPageData{
			AppName:       s.config.GetAppName(),
			AICallsServed: store.AICalls(),
			Error:         r.URL.Query().Get("error"),
		}
		if user := store.StoredUser(); user != nil {
			data.FullName = user.FullName
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render chatbot template")
			http.Error(w, "Failed to render chatbot page", http.StatusInternalServerError)
		}
	}
}

// TranslateHandler runs a translation request and re-renders the page
// with the outcome. The per-session assistant counter only advances on
// answered requests, never on declined or failed ones.
func (s *Server) TranslateHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("chatbot.html")
	if err != nil {
		panic("Failed to parse chatbot template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		text := r.FormValue("text")
		if text == "" {
			redirectWithError(w, r, RouteChatbot, "Enter some text to translate")
			return
		}

		store := s.sessionStore(r)
		client := s.gatewayClient(store)

		data := ChatbotPageData{AppName: s.config.GetAppName()}
		if user := store.StoredUser(); user != nil {
			data.FullName = user.FullName
		}

		translation, err := client.Translate(r.Context(), text, r.FormValue("targetLanguage"))
		switch {
		case err != nil:
			log.Err(err).Msg("Chatbot: translate failed")
			data.Error = gatewayErrorMessage(err)
		case translation.Declined():
			data.DeclinedReason = translation.Error
			data.DeclinedSuggestion = translation.Suggestion
		default:
			data.Translation = translation
			if err := store.IncrementAICalls(); err != nil {
				log.Err(err).Msg("Chatbot: failed to advance assistant counter")
			}
		}
		data.AICallsServed = store.AICalls()

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render chatbot template")
			http.Error(w, "Failed to render chatbot page", http.StatusInternalServerError)
		}
	}
}

// SummarizeHandler runs a summarization request with the same outcome
// handling as translation.
func (s *Server) SummarizeHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("chatbot.html")
	if err != nil {
		panic("Failed to parse chatbot template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		text := r.FormValue("text")
		if text == "" {
			redirectWithError(w, r, RouteChatbot, "Enter some text to summarize")
			return
		}
		maxLength, _ := strconv.Atoi(r.FormValue("maxLength"))

		store := s.sessionStore(r)
		client := s.gatewayClient(store)

		data := ChatbotPageData{AppName: s.config.GetAppName()}
		if user := store.StoredUser(); user != nil {
			data.FullName = user.FullName
		}

		summary, err := client.Summarize(r.Context(), text, maxLength)
		switch {
		case err != nil:
			log.Err(err).Msg("Chatbot: summarize failed")
			data.Error = gatewayErrorMessage(err)
		case summary.Declined():
			data.DeclinedReason = summary.Error
			data.DeclinedSuggestion = summary.Suggestion
		default:
			data.Summary = summary
			if err := store.IncrementAICalls(); err != nil {
				log.Err(err).Msg("Chatbot: failed to advance assistant counter")
			}
		}
		data.AICallsServed = store.AICalls()

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render chatbot template")
			http.Error(w, "Failed to render chatbot page", http.StatusInternalServerError)
		}
	}
}
