package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/xtding233/loot-economy/internal/reward"
)

const maxBodyBytes = 1 << 20

func parseInt(r *http.Request, key string) (int64, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

type balanceResp struct {
	Balance int64 `json:"balance"`
}

type refreshResp struct {
	Refreshed bool                `json:"refreshed"`
	Catalog   []reward.Definition `json:"catalog"`
}

type revealResp struct {
	State   string `json:"state"`
	Stopped bool   `json:"stopped,omitempty"`
}

func (s *Server) catalog() []reward.Definition {
	if pool := s.engine.Catalog(); pool != nil {
		return pool
	}
	return []reward.Definition{}
}

func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog())
}

// PUT body: a JSON array of reward definitions.
func (s *Server) handleReplaceCatalog(w http.ResponseWriter, r *http.Request) {
	var pool []reward.Definition
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&pool); err != nil {
		writeBadRequest(w, "invalid catalog body: "+err.Error())
		return
	}
	if err := s.engine.ReplaceCatalog(r.Context(), pool); err != nil {
		s.writeEngineError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, s.catalog())
}

// ?force=true recomposes even when today's pool is installed.
func (s *Server) handleRefreshCatalog(w http.ResponseWriter, r *http.Request) {
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
	refreshed := true
	var err error
	if force {
		err = s.engine.ForceRefresh(r.Context())
	} else {
		refreshed, err = s.engine.RefreshCatalog(r.Context())
	}
	if err != nil {
		s.writeEngineError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, refreshResp{Refreshed: refreshed, Catalog: s.catalog()})
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	items := s.engine.Inventory()
	if ts := r.URL.Query().Get("tier"); ts != "" {
		t, err := strconv.Atoi(ts)
		if err != nil || !reward.Tier(t).Valid() {
			writeBadRequest(w, "invalid tier")
			return
		}
		filtered := items[:0]
		for _, it := range items {
			if it.Tier == reward.Tier(t) {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	if items == nil {
		items = []reward.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, balanceResp{Balance: s.engine.Balance()})
}

func (s *Server) handleCredit(w http.ResponseWriter, r *http.Request) {
	amount, ok, msg := parseInt(r, "amount")
	if msg != "" {
		writeBadRequest(w, msg)
		return
	}
	if !ok {
		writeBadRequest(w, "missing param amount")
		return
	}
	b, err := s.engine.Credit(r.Context(), amount)
	if err != nil {
		s.writeEngineError(w, r, err, map[string]any{"amount": amount})
		return
	}
	writeJSON(w, http.StatusOK, balanceResp{Balance: b})
}

// ?cost=N overrides the configured draw cost.
func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	cost, ok, msg := parseInt(r, "cost")
	if msg != "" {
		writeBadRequest(w, msg)
		return
	}
	if !ok {
		cost = s.engine.DrawCost()
	}
	out, err := s.engine.Draw(r.Context(), cost)
	if err != nil {
		s.writeEngineError(w, r, err, map[string]any{"cost": cost, "balance": s.engine.Balance()})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCraft(w http.ResponseWriter, r *http.Request) {
	target, ok, msg := parseInt(r, "target")
	if msg != "" {
		writeBadRequest(w, msg)
		return
	}
	if !ok {
		writeBadRequest(w, "missing param target")
		return
	}
	out, err := s.engine.Craft(r.Context(), reward.Tier(target))
	if err != nil {
		s.writeEngineError(w, r, err, map[string]any{"target": target})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRevealState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, revealResp{State: s.engine.RevealState().String()})
}

func (s *Server) handleRevealComplete(w http.ResponseWriter, r *http.Request) {
	stopped := s.engine.CompleteReveal()
	writeJSON(w, http.StatusOK, revealResp{State: s.engine.RevealState().String(), Stopped: stopped})
}

func (s *Server) handleRevealCancel(w http.ResponseWriter, r *http.Request) {
	stopped := s.engine.CancelReveal()
	writeJSON(w, http.StatusOK, revealResp{State: s.engine.RevealState().String(), Stopped: stopped})
}

func (s *Server) handleIdle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.BuildIdleDisplay())
}
