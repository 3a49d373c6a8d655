package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/demajh/research-listener/pkg/domain"
	"github.com/demajh/research-listener/pkg/repository"
	"github.com/demajh/research-listener/pkg/scheduler"
)

// subscriptionRequest is the body of a subscribe call
type subscriptionRequest struct {
	Email    string `json:"email"`
	Channel  string `json:"channel"`
	Interest string `json:"interest"`
}

// subscriptionView is the API representation of a subscription
type subscriptionView struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Channel   string    `json:"channel"`
	Interest  string    `json:"interest"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	FeedURL   string    `json:"feed_url"`
}

// statusHandler returns server status, database health and the last run report
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	if err := s.db.Ping(r.Context()); err != nil {
		lgr.Printf("[WARN] database ping failed: %v", err)
		dbStatus = "unavailable"
	}
	status := rest.JSON{
		"status":   "ok",
		"version":  s.version,
		"time":     time.Now().UTC(),
		"running":  s.scheduler.Running(),
		"database": dbStatus,
	}
	if last, ok := s.scheduler.LastReport(); ok {
		status["last_run"] = last
	}
	renderJSON(w, r, http.StatusOK, status)
}

// createSubscriptionHandler registers a new subscription
func (s *Server) createSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	sub, err := req.validate()
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.db.CreateSubscription(r.Context(), &sub); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		lgr.Printf("[ERROR] failed to create subscription: %v", err)
		renderError(w, r, fmt.Errorf("failed to create subscription"), http.StatusInternalServerError)
		return
	}

	lgr.Printf("[INFO] new subscription %d: %s to %s", sub.ID, sub.Email, sub.Channel)
	renderJSON(w, r, http.StatusCreated, rest.JSON{"id": sub.ID, "feed_url": s.generator.FeedURL(sub.ID)})
}

// listSubscriptionsHandler returns active subscriptions, or all with ?all=true
func (s *Server) listSubscriptionsHandler(w http.ResponseWriter, r *http.Request) {
	all, _ := strconv.ParseBool(r.URL.Query().Get("all"))

	subs, err := s.db.ListSubscriptions(r.Context(), !all)
	if err != nil {
		lgr.Printf("[ERROR] failed to list subscriptions: %v", err)
		renderError(w, r, fmt.Errorf("failed to list subscriptions"), http.StatusInternalServerError)
		return
	}

	res := make([]subscriptionView, 0, len(subs))
	for _, sub := range subs {
		res = append(res, subscriptionView{
			ID:        sub.ID,
			Email:     sub.Email,
			Channel:   sub.Channel,
			Interest:  sub.Interest,
			Active:    sub.Active,
			CreatedAt: sub.CreatedAt,
			FeedURL:   s.generator.FeedURL(sub.ID),
		})
	}
	renderJSON(w, r, http.StatusOK, res)
}

// deleteSubscriptionHandler deactivates a subscription, the record and its digests are kept.
// With ?purge=true the subscription and its digests are removed.
func (s *Server) deleteSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid subscription ID"), http.StatusBadRequest)
		return
	}
	purge, _ := strconv.ParseBool(r.URL.Query().Get("purge"))

	action := "deactivate"
	if purge {
		action = "delete"
		err = s.db.DeleteSubscription(r.Context(), id)
	} else {
		err = s.db.SetSubscriptionActive(r.Context(), id, false)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			renderError(w, r, fmt.Errorf("subscription %d not found", id), http.StatusNotFound)
			return
		}
		lgr.Printf("[ERROR] failed to %s subscription %d: %v", action, id, err)
		renderError(w, r, fmt.Errorf("failed to %s subscription", action), http.StatusInternalServerError)
		return
	}

	if purge {
		lgr.Printf("[INFO] subscription %d deleted", id)
		renderJSON(w, r, http.StatusOK, rest.JSON{"id": id, "deleted": true})
		return
	}
	lgr.Printf("[INFO] subscription %d deactivated", id)
	renderJSON(w, r, http.StatusOK, rest.JSON{"id": id, "active": false})
}

// runHandler starts a sweep in background
func (s *Server) runHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.scheduler.Trigger(); err != nil {
		if errors.Is(err, scheduler.ErrRunInProgress) {
			renderError(w, r, err, http.StatusConflict)
			return
		}
		if errors.Is(err, scheduler.ErrStopped) {
			renderError(w, r, err, http.StatusServiceUnavailable)
			return
		}
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusAccepted, rest.JSON{"status": "started"})
}

// validate checks the request and converts it to a subscription
func (req subscriptionRequest) validate() (domain.Subscription, error) {
	email := strings.TrimSpace(req.Email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return domain.Subscription{}, fmt.Errorf("invalid email %q", req.Email)
	}

	channel := strings.TrimSpace(req.Channel)
	if channel == "" || strings.ContainsAny(channel, " \t\n") {
		return domain.Subscription{}, fmt.Errorf("invalid channel %q", req.Channel)
	}

	interest := strings.Join(strings.Fields(req.Interest), " ")
	if interest == "" {
		return domain.Subscription{}, fmt.Errorf("interest is required")
	}
	if len(interest) > 1000 {
		return domain.Subscription{}, fmt.Errorf("interest is too long")
	}

	return domain.Subscription{Email: email, Channel: channel, Interest: interest}, nil
}
