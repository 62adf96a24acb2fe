package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ayush9889/score-wise/internal/adapters/http/api"
	repository "github.com/ayush9889/score-wise/internal/adapters/repository"
	"github.com/ayush9889/score-wise/internal/domain/match"
	"github.com/ayush9889/score-wise/internal/domain/model"
	"github.com/ayush9889/score-wise/internal/domain/scorer"
	"github.com/ayush9889/score-wise/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing.

type mockDependencies struct {
	snap    *match.Snapshot
	export  scorer.Export
	player  *stats.PlayerStats
	entries []api.Entry
	err     error

	lastMatchID string
	lastBall    model.Ball
	lastOpeners model.Openers
	lastPlayer  string
	calls       []string
}

func (m *mockDependencies) record(call string) { m.calls = append(m.calls, call) }

func (m *mockDependencies) CreateMatch(ctx context.Context, cfg model.Config) (*match.Snapshot, error) {
	m.record("create")
	if m.err != nil {
		return nil, m.err
	}
	return m.snap, nil
}

func (m *mockDependencies) AppendBall(ctx context.Context, matchID string, b model.Ball) (*match.Snapshot, error) {
	m.record("ball")
	m.lastMatchID = matchID
	m.lastBall = b
	if m.err != nil {
		return nil, m.err
	}
	return m.snap, nil
}

func (m *mockDependencies) Undo(ctx context.Context, matchID string) (*match.Snapshot, error) {
	m.record("undo")
	m.lastMatchID = matchID
	if m.err != nil {
		return nil, m.err
	}
	return m.snap, nil
}

func (m *mockDependencies) Redo(ctx context.Context, matchID string) (*match.Snapshot, error) {
	m.record("redo")
	m.lastMatchID = matchID
	if m.err != nil {
		return nil, m.err
	}
	return m.snap, nil
}

func (m *mockDependencies) StartSecondInnings(ctx context.Context, matchID string, o model.Openers) (*match.Snapshot, error) {
	m.record("innings")
	m.lastMatchID = matchID
	m.lastOpeners = o
	if m.err != nil {
		return nil, m.err
	}
	return m.snap, nil
}

func (m *mockDependencies) SetManOfTheMatch(ctx context.Context, matchID, player string) (*match.Snapshot, error) {
	m.record("motm")
	m.lastMatchID = matchID
	m.lastPlayer = player
	if m.err != nil {
		return nil, m.err
	}
	return m.snap, nil
}

func (m *mockDependencies) Snapshot(ctx context.Context, matchID string) (*match.Snapshot, error) {
	m.record("snapshot")
	m.lastMatchID = matchID
	if m.err != nil {
		return nil, m.err
	}
	return m.snap, nil
}

func (m *mockDependencies) Export(ctx context.Context, matchID string) (scorer.Export, error) {
	m.record("export")
	m.lastMatchID = matchID
	if m.err != nil {
		return scorer.Export{}, m.err
	}
	return m.export, nil
}

func (m *mockDependencies) Import(ctx context.Context, e scorer.Export) (*match.Snapshot, error) {
	m.record("import")
	if m.err != nil {
		return nil, m.err
	}
	return m.snap, nil
}

func (m *mockDependencies) PlayerStats(ctx context.Context, player string) (*stats.PlayerStats, error) {
	m.record("player")
	m.lastPlayer = player
	if m.err != nil {
		return nil, m.err
	}
	return m.player, nil
}

func (m *mockDependencies) TopBatsmen(ctx context.Context, n int) ([]api.Entry, error) {
	m.record("top_batsmen")
	if m.err != nil {
		return nil, m.err
	}
	if n < len(m.entries) {
		return m.entries[:n], nil
	}
	return m.entries, nil
}

func (m *mockDependencies) TopBowlers(ctx context.Context, n int) ([]api.Entry, error) {
	m.record("top_bowlers")
	if m.err != nil {
		return nil, m.err
	}
	if n < len(m.entries) {
		return m.entries[:n], nil
	}
	return m.entries, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newTestMux(deps *mockDependencies) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"matches": 1}}, 100)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func liveSnapshot(id string) *match.Snapshot {
	return &match.Snapshot{
		MatchID:       id,
		TotalOvers:    20,
		State:         match.StateFirstInnings,
		InningsNumber: 1,
		Striker:       "a1",
		NonStriker:    "a2",
		Bowler:        "b11",
	}
}

func TestServerRegister(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDependencies{snap: liveSnapshot("m1")}
		mux := newTestMux(deps)

		Convey("Then the health endpoint responds", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then the stats endpoint serves JSON", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)

			var body map[string]interface{}
			So(json.NewDecoder(w.Body).Decode(&body), ShouldBeNil)
			So(body["matches"], ShouldEqual, 1)
		})

		Convey("Then an unknown route is a 404", func() {
			req := httptest.NewRequest(http.MethodGet, "/nope", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestMatchesEndpoints(t *testing.T) {
	Convey("Given the matches routes", t, func() {
		deps := &mockDependencies{snap: liveSnapshot("m1")}
		mux := newTestMux(deps)

		Convey("When creating a match", func() {
			body := `{"match_id":"m1","total_overs":20}`
			req := httptest.NewRequest(http.MethodPost, "/matches", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond 201 with the snapshot", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)

				var snap match.Snapshot
				So(json.NewDecoder(w.Body).Decode(&snap), ShouldBeNil)
				So(snap.MatchID, ShouldEqual, "m1")
				So(deps.calls, ShouldContain, "create")
			})
		})

		Convey("When creating a match with malformed JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/matches", strings.NewReader(`{`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond 400 without touching the service", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(deps.calls, ShouldBeEmpty)

				var resp map[string]string
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "bad_request")
			})
		})

		Convey("When the configuration is rejected", func() {
			deps.err = fmt.Errorf("%w: team_a needs players", match.ErrValidation)
			req := httptest.NewRequest(http.MethodPost, "/matches", strings.NewReader(`{}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond 400 with a validation code", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var resp map[string]string
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "validation_error")
			})
		})

		Convey("When fetching a snapshot", func() {
			req := httptest.NewRequest(http.MethodGet, "/matches/m1", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond 200 with the snapshot", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastMatchID, ShouldEqual, "m1")

				var snap match.Snapshot
				So(json.NewDecoder(w.Body).Decode(&snap), ShouldBeNil)
				So(snap.Striker, ShouldEqual, "a1")
			})
		})

		Convey("When fetching an unknown match", func() {
			deps.err = fmt.Errorf("match m9 not found")
			req := httptest.NewRequest(http.MethodGet, "/matches/m9", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)

				var resp map[string]string
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "not_found")
			})
		})

		Convey("When recording a ball", func() {
			body := `{"innings":1,"batting_team":"Lions","striker":"a1","non_striker":"a2","bowler":"b11","runs":4}`
			req := httptest.NewRequest(http.MethodPost, "/matches/m1/balls", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should pass the delivery through and respond 200", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastMatchID, ShouldEqual, "m1")
				So(deps.lastBall.Striker, ShouldEqual, "a1")
				So(deps.lastBall.Runs, ShouldEqual, 4)
			})
		})

		Convey("When a ball is rejected as invalid", func() {
			deps.err = fmt.Errorf("%w: negative runs", match.ErrValidation)
			req := httptest.NewRequest(http.MethodPost, "/matches/m1/balls", strings.NewReader(`{"runs":-1}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When a ball arrives in the wrong state", func() {
			deps.err = fmt.Errorf("%w: match complete", match.ErrState)
			req := httptest.NewRequest(http.MethodPost, "/matches/m1/balls", strings.NewReader(`{"runs":1}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond 409 with a state code", func() {
				So(w.Code, ShouldEqual, http.StatusConflict)

				var resp map[string]string
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "state_error")
			})
		})

		Convey("When undoing and redoing", func() {
			undoReq := httptest.NewRequest(http.MethodPost, "/matches/m1/undo", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, undoReq)
			So(w.Code, ShouldEqual, http.StatusOK)

			redoReq := httptest.NewRequest(http.MethodPost, "/matches/m1/redo", nil)
			w = httptest.NewRecorder()
			mux.ServeHTTP(w, redoReq)
			So(w.Code, ShouldEqual, http.StatusOK)

			Convey("Then both operations should reach the service", func() {
				So(deps.calls, ShouldResemble, []string{"undo", "redo"})
			})
		})

		Convey("When starting the second innings", func() {
			body := `{"striker":"b1","non_striker":"b2","bowler":"a11"}`
			req := httptest.NewRequest(http.MethodPost, "/matches/m1/innings", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the openers should pass through", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastOpeners, ShouldResemble, model.Openers{
					Striker:    "b1",
					NonStriker: "b2",
					Bowler:     "a11",
				})
			})
		})

		Convey("When setting the man of the match", func() {
			req := httptest.NewRequest(http.MethodPost, "/matches/m1/motm", strings.NewReader(`{"player":"a1"}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the award should pass through", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastPlayer, ShouldEqual, "a1")
			})
		})

		Convey("When exporting and importing", func() {
			deps.export = scorer.Export{
				Config:        model.Config{MatchID: "m1", TotalOvers: 20},
				ManOfTheMatch: "a1",
			}

			req := httptest.NewRequest(http.MethodGet, "/matches/m1/export", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)

			var exported scorer.Export
			So(json.NewDecoder(w.Body).Decode(&exported), ShouldBeNil)
			So(exported.Config.MatchID, ShouldEqual, "m1")
			So(exported.ManOfTheMatch, ShouldEqual, "a1")

			raw, err := json.Marshal(exported)
			So(err, ShouldBeNil)
			importReq := httptest.NewRequest(http.MethodPost, "/matches/import", strings.NewReader(string(raw)))
			w = httptest.NewRecorder()
			mux.ServeHTTP(w, importReq)

			Convey("Then import should respond 201", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(deps.calls, ShouldContain, "import")
			})
		})

		Convey("When using the wrong method on a match route", func() {
			req := httptest.NewRequest(http.MethodGet, "/matches/m1/balls", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(deps.calls, ShouldBeEmpty)
			})
		})

		Convey("When the match id is missing", func() {
			req := httptest.NewRequest(http.MethodGet, "/matches/", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestPlayersEndpoint(t *testing.T) {
	Convey("Given the players route", t, func() {
		deps := &mockDependencies{
			player: &stats.PlayerStats{Player: "a1", RunsScored: 120, MatchesPlayed: 3},
		}
		mux := newTestMux(deps)

		Convey("When fetching a known player", func() {
			req := httptest.NewRequest(http.MethodGet, "/players/a1", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond 200 with the career record", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastPlayer, ShouldEqual, "a1")

				var record stats.PlayerStats
				So(json.NewDecoder(w.Body).Decode(&record), ShouldBeNil)
				So(record.RunsScored, ShouldEqual, 120)
				So(record.MatchesPlayed, ShouldEqual, 3)
			})
		})

		Convey("When fetching an unknown player", func() {
			deps.err = fmt.Errorf("player zz: %w", repository.ErrNotFound)
			req := httptest.NewRequest(http.MethodGet, "/players/zz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the player id is empty", func() {
			req := httptest.NewRequest(http.MethodGet, "/players/", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(deps.calls, ShouldBeEmpty)
			})
		})
	})
}

func TestLeaderboardEndpoints(t *testing.T) {
	Convey("Given the leaderboard routes", t, func() {
		deps := &mockDependencies{
			entries: []api.Entry{
				{Rank: 1, Player: "a1", Stats: &stats.PlayerStats{Player: "a1", RunsScored: 90}},
				{Rank: 2, Player: "a2", Stats: &stats.PlayerStats{Player: "a2", RunsScored: 60}},
			},
		}
		mux := newTestMux(deps)

		Convey("When requesting the batting leaderboard", func() {
			req := httptest.NewRequest(http.MethodGet, "/leaderboard/batting?limit=10", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond 200 with ranked entries", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.calls, ShouldResemble, []string{"top_batsmen"})

				var entries []api.Entry
				So(json.NewDecoder(w.Body).Decode(&entries), ShouldBeNil)
				So(len(entries), ShouldEqual, 2)
				So(entries[0].Player, ShouldEqual, "a1")
			})
		})

		Convey("When requesting the bowling leaderboard", func() {
			req := httptest.NewRequest(http.MethodGet, "/leaderboard/bowling?limit=1", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond 200 with the truncated list", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.calls, ShouldResemble, []string{"top_bowlers"})

				var entries []api.Entry
				So(json.NewDecoder(w.Body).Decode(&entries), ShouldBeNil)
				So(len(entries), ShouldEqual, 1)
			})
		})

		Convey("When the limit is missing or malformed", func() {
			for _, target := range []string{
				"/leaderboard/batting",
				"/leaderboard/batting?limit=abc",
				"/leaderboard/batting?limit=0",
				"/leaderboard/batting?limit=-3",
			} {
				req := httptest.NewRequest(http.MethodGet, target, nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			}

			Convey("Then the service should never be called", func() {
				So(deps.calls, ShouldBeEmpty)
			})
		})

		Convey("When the limit exceeds the configured maximum", func() {
			req := httptest.NewRequest(http.MethodGet, "/leaderboard/batting?limit=101", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond 400 with limit_exceeded", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var resp map[string]string
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "limit_exceeded")
			})
		})

		Convey("When the store fails", func() {
			deps.err = fmt.Errorf("store unavailable")
			req := httptest.NewRequest(http.MethodGet, "/leaderboard/bowling?limit=5", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond 500", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})

		Convey("When posting to a leaderboard route", func() {
			req := httptest.NewRequest(http.MethodPost, "/leaderboard/batting?limit=5", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should respond 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}
