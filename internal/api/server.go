// Package api serves the colony over HTTP.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (admin control plane).
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/nvandermeer/suburbfall/internal/chronicle"
	"github.com/nvandermeer/suburbfall/internal/notify"
	"github.com/nvandermeer/suburbfall/internal/sim"
	"github.com/nvandermeer/suburbfall/internal/trade"
	"github.com/nvandermeer/suburbfall/internal/world"
)

// Server serves colony state over HTTP and streams notifications over
// websocket.
type Server struct {
	World    *sim.World
	Archive  *chronicle.Archive
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	wsConns int32
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	limiter := NewPerIPLimiter(rate.Limit(20), 40)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/resources", s.handleResources)
	mux.HandleFunc("/api/v1/nodes", s.handleNodes)
	mux.HandleFunc("/api/v1/survivors", s.handleSurvivors)
	mux.HandleFunc("/api/v1/survivor/", s.handleSurvivorDetail)
	mux.HandleFunc("/api/v1/wanderers", s.handleWanderers)
	mux.HandleFunc("/api/v1/factions", s.handleFactions)
	mux.HandleFunc("/api/v1/faction/", s.handleFactionDetail)
	mux.HandleFunc("/api/v1/buildings", s.handleBuildings)
	mux.HandleFunc("/api/v1/building/", s.handleBuildingDetail)
	mux.HandleFunc("/api/v1/recipes", s.handleRecipes)
	mux.HandleFunc("/api/v1/research", s.handleResearch)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/trader", s.handleTrader)
	mux.HandleFunc("/api/v1/map", s.handleMap)
	mux.HandleFunc("/api/v1/chronicle", s.handleChronicle)
	mux.HandleFunc("/api/v1/stats/history", s.handleStatsHistory)

	// Websocket notification stream.
	mux.HandleFunc("/api/v1/stream", s.handleStream)

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))
	mux.HandleFunc("/api/v1/mode", s.adminOnly(s.handleMode))
	mux.HandleFunc("/api/v1/build", s.adminOnly(s.handleBuild))
	mux.HandleFunc("/api/v1/research/start", s.adminOnly(s.handleResearchStart))
	mux.HandleFunc("/api/v1/recruit", s.adminOnly(s.handleRecruit))
	mux.HandleFunc("/api/v1/choice", s.adminOnly(s.handleChoice))
	mux.HandleFunc("/api/v1/trade", s.adminOnly(s.handleTrade))
	mux.HandleFunc("/api/v1/harvest", s.adminOnly(s.handleHarvest))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(RateLimitMiddleware(limiter, mux.ServeHTTP))
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins. Set
// CORS_ORIGINS to a comma-separated list; localhost dev servers are always
// allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request carries the admin token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "admin endpoints disabled (no SUBURBFALL_ADMIN_KEY set)", http.StatusForbidden)
				return
			}
			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var status map[string]any
	s.World.Do(func() {
		status = map[string]any{
			"name":            "Suburbfall",
			"tick":            s.World.Ticks(),
			"sim_time":        s.World.Clock.String(),
			"day":             s.World.Clock.Day(),
			"hour":            s.World.Clock.Hour(),
			"time_scale":      s.World.Clock.Scale(),
			"conspiracy_heat": s.World.Shared.ConspiracyHeat(),
			"defense_mode":    s.World.Shared.DefenseMode(),
			"build_mode":      s.World.Shared.BuildMode(),
			"survivors":       s.World.Roster.Count(),
			"wanderers":       len(s.World.Roster.Wanderers()),
			"buildings":       len(s.World.Yard.Buildings()),
			"active_events":   len(s.World.Events.Active()),
			"trader_present":  s.World.Post.Current() != nil,
		}
	})
	writeJSON(w, status)
}

func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	var result map[string]any
	s.World.Do(func() {
		stockpile := s.World.Ledger.Stockpile()
		result = map[string]any{
			"stock":     s.World.Ledger.All(),
			"stockpile": map[string]float64{"x": stockpile.X, "y": stockpile.Y},
			"types":     s.World.Ledger.Types(),
		}
	})
	writeJSON(w, result)
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	var result any
	s.World.Do(func() {
		result = s.World.Ledger.Nodes()
	})
	writeJSON(w, result)
}

func (s *Server) handleSurvivors(w http.ResponseWriter, r *http.Request) {
	var result any
	s.World.Do(func() {
		result = s.World.Roster.Survivors()
	})
	writeJSON(w, result)
}

func (s *Server) handleSurvivorDetail(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 5 || parts[4] == "" {
		http.Error(w, "missing survivor id", http.StatusBadRequest)
		return
	}
	id := parts[4]

	var result any
	found := false
	s.World.Do(func() {
		if sv, ok := s.World.Roster.Survivor(id); ok {
			result = sv
			found = true
		}
	})
	if !found {
		http.Error(w, "survivor not found", http.StatusNotFound)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleWanderers(w http.ResponseWriter, r *http.Request) {
	var result any
	s.World.Do(func() {
		result = s.World.Roster.Wanderers()
	})
	writeJSON(w, result)
}

func (s *Server) handleFactions(w http.ResponseWriter, r *http.Request) {
	type factionSummary struct {
		ID           string   `json:"id"`
		Name         string   `json:"name"`
		Relationship int      `json:"relationship"`
		Units        int      `json:"units"`
		Traits       []string `json:"traits"`
	}

	var result []factionSummary
	s.World.Do(func() {
		for _, f := range s.World.Rivals.Factions() {
			result = append(result, factionSummary{
				ID:           f.ID,
				Name:         f.Name,
				Relationship: f.Relationship,
				Units:        len(f.UnitIDs),
				Traits:       f.Traits,
			})
		}
	})
	writeJSON(w, result)
}

func (s *Server) handleFactionDetail(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 5 || parts[4] == "" {
		http.Error(w, "missing faction id", http.StatusBadRequest)
		return
	}
	id := parts[4]

	var result map[string]any
	s.World.Do(func() {
		f, ok := s.World.Rivals.Faction(id)
		if !ok {
			return
		}
		var units []any
		for _, u := range s.World.Rivals.Units() {
			if u.FactionID == id {
				units = append(units, u)
			}
		}
		result = map[string]any{
			"faction": f,
			"units":   units,
		}
	})
	if result == nil {
		http.Error(w, "faction not found", http.StatusNotFound)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleBuildings(w http.ResponseWriter, r *http.Request) {
	var result any
	s.World.Do(func() {
		result = s.World.Yard.Buildings()
	})
	writeJSON(w, result)
}

func (s *Server) handleBuildingDetail(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 5 || parts[4] == "" {
		http.Error(w, "missing building id", http.StatusBadRequest)
		return
	}
	id := parts[4]

	var result any
	found := false
	s.World.Do(func() {
		if b, ok := s.World.Yard.Building(id); ok {
			result = b
			found = true
		}
	})
	if !found {
		http.Error(w, "building not found", http.StatusNotFound)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleRecipes(w http.ResponseWriter, r *http.Request) {
	var result any
	s.World.Do(func() {
		result = s.World.Yard.Recipes()
	})
	writeJSON(w, result)
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	var result map[string]any
	s.World.Do(func() {
		result = map[string]any{
			"projects": s.World.Lab.Projects(),
			"progress": s.World.Lab.Progress(),
		}
		if active := s.World.Lab.Active(); active != nil {
			result["active"] = active.ID
		}
	})
	writeJSON(w, result)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	var result map[string]any
	s.World.Do(func() {
		history := s.World.Events.History()
		start := 0
		if len(history) > limit {
			start = len(history) - limit
		}
		result = map[string]any{
			"active":  s.World.Events.Active(),
			"history": history[start:],
		}
	})
	writeJSON(w, result)
}

func (s *Server) handleTrader(w http.ResponseWriter, r *http.Request) {
	var result map[string]any
	s.World.Do(func() {
		tr := s.World.Post.Current()
		if tr == nil {
			result = map[string]any{"present": false}
			return
		}
		result = map[string]any{
			"present":   true,
			"trader":    tr,
			"inventory": tr.Inventory(),
		}
	})
	writeJSON(w, result)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	var result map[string]any
	s.World.Do(func() {
		m := s.World.Map
		result = map[string]any{
			"width":       m.Width,
			"height":      m.Height,
			"tile_size":   m.TileSize,
			"type_counts": m.TypeCounts(),
		}
	})
	writeJSON(w, result)
}

func (s *Server) handleChronicle(w http.ResponseWriter, r *http.Request) {
	if s.Archive == nil {
		http.Error(w, "chronicle not available", http.StatusServiceUnavailable)
		return
	}

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	var (
		entries []chronicle.Entry
		err     error
	)
	if kind := r.URL.Query().Get("kind"); kind != "" {
		entries, err = s.Archive.EntriesByKind(notify.Kind(kind), limit)
	} else {
		entries, err = s.Archive.RecentEntries(limit)
	}
	if err != nil {
		slog.Error("chronicle query failed", "error", err)
		writeJSON(w, []chronicle.Entry{})
		return
	}
	if entries == nil {
		entries = []chronicle.Entry{}
	}
	writeJSON(w, entries)
}

func (s *Server) handleStatsHistory(w http.ResponseWriter, r *http.Request) {
	if s.Archive == nil {
		http.Error(w, "chronicle not available", http.StatusServiceUnavailable)
		return
	}

	rows, err := s.Archive.AllStats()
	if err != nil {
		slog.Error("stats history query failed", "error", err)
		writeJSON(w, []chronicle.DailyStats{})
		return
	}
	if rows == nil {
		rows = []chronicle.DailyStats{}
	}
	writeJSON(w, rows)
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var req struct {
			Scale float64 `json:"scale"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Scale < 0 || req.Scale > 1000 {
			http.Error(w, "scale must be 0-1000", http.StatusBadRequest)
			return
		}
		s.World.Do(func() {
			s.World.Clock.SetScale(req.Scale)
		})
		slog.Info("time scale changed", "scale", req.Scale)
	}

	var scale float64
	s.World.Do(func() { scale = s.World.Clock.Scale() })
	writeJSON(w, map[string]float64{"scale": scale})
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var req struct {
			Defense *bool `json:"defense,omitempty"`
			Build   *bool `json:"build,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		s.World.Do(func() {
			if req.Defense != nil {
				s.World.Shared.SetDefenseMode(*req.Defense)
			}
			if req.Build != nil {
				s.World.Shared.SetBuildMode(*req.Build)
			}
		})
	}

	var result map[string]bool
	s.World.Do(func() {
		result = map[string]bool{
			"defense": s.World.Shared.DefenseMode(),
			"build":   s.World.Shared.BuildMode(),
		}
	})
	writeJSON(w, result)
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		RecipeID string  `json:"recipe_id"`
		X        float64 `json:"x"`
		Y        float64 `json:"y"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.RecipeID == "" {
		http.Error(w, "recipe_id required", http.StatusBadRequest)
		return
	}

	var (
		buildingID string
		buildErr   error
	)
	s.World.Do(func() {
		b, err := s.World.Yard.StartBuilding(req.RecipeID, world.Position{X: req.X, Y: req.Y}, "")
		if err != nil {
			buildErr = err
			return
		}
		buildingID = b.ID
	})
	if buildErr != nil {
		http.Error(w, buildErr.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"building_id": buildingID})
}

func (s *Server) handleResearchStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	var startErr error
	s.World.Do(func() {
		startErr = s.World.Lab.Start(req.ProjectID)
	})
	if startErr != nil {
		http.Error(w, startErr.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"started": req.ProjectID})
}

func (s *Server) handleRecruit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		WandererID string `json:"wanderer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	var recruitErr error
	s.World.Do(func() {
		recruitErr = s.World.Roster.RecruitWanderer(req.WandererID)
	})
	if recruitErr != nil {
		http.Error(w, recruitErr.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"recruited": req.WandererID})
}

func (s *Server) handleChoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		EventID string `json:"event_id"`
		Choice  int    `json:"choice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	var choiceErr error
	s.World.Do(func() {
		choiceErr = s.World.Events.MakeChoice(req.EventID, req.Choice)
	})
	if choiceErr != nil {
		http.Error(w, choiceErr.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"resolved": req.EventID})
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Gives    []trade.Lot `json:"gives"`
		Receives []trade.Lot `json:"receives"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	var tradeErr error
	s.World.Do(func() {
		tradeErr = s.World.Post.ExecuteTrade(req.Gives, req.Receives)
	})
	if tradeErr != nil {
		http.Error(w, tradeErr.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"success": true})
}

func (s *Server) handleHarvest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		NodeID string `json:"node_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	harvested := false
	s.World.Do(func() {
		harvested = s.World.Ledger.Harvest(req.NodeID)
	})
	if !harvested {
		http.Error(w, "node not harvestable", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"harvested": req.NodeID})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
