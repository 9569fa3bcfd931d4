package cli

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romario-developer/despesas-pwa/internal/breaker"
	"github.com/romario-developer/despesas-pwa/internal/events"
	"github.com/romario-developer/despesas-pwa/internal/services"
)

func TestCommands_Planning(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.month(t, "2024-03")

	out := h.run(
		"salary 5.000,00",
		"extra", "Freela", "800", "",
		"bill", "Aluguel", "1.500", "5",
		"bill", "Internet", "99,90", "",
		"planning",
		"rmbill p3",
		"rmextra nope",
		"exit",
	)

	assert.Contains(t, out, "Salário de Março 2024: R$ 5.000,00")
	assert.Contains(t, out, "Renda extra adicionada (p1).")
	assert.Contains(t, out, "Conta fixa adicionada (p2).")
	assert.Contains(t, out, "Sobra:         R$ 4.200,10")
	assert.Contains(t, out, "Aluguel")
	assert.Contains(t, out, "Conta fixa apagada.")
	assert.Contains(t, out, "Erro: Item não encontrado.")

	p, err := h.svc.Planning.Local(context.Background())
	require.NoError(t, err)
	require.Len(t, p.FixedBills, 1)
	assert.Equal(t, "Aluguel", p.FixedBills[0].Name)
	assert.Equal(t, 5, p.FixedBills[0].DueDay)
}

func TestCommands_PlanningSync(t *testing.T) {
	h := newHarness(t)
	pushed := make(chan map[string]any, 1)
	h.handle("/api/planning", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"salaryByMonth": map[string]any{"2024-03": 7000}})
	}, http.MethodGet)
	h.handle("/api/planning", func(w http.ResponseWriter, r *http.Request) {
		body := readJSON(r)
		pushed <- body
		writeJSON(w, http.StatusOK, body)
	}, http.MethodPut)
	h.login(t)
	h.month(t, "2024-03")

	out := h.run("plan-pull", "n", "plan-pull", "sim", "salary 7.100", "plan-push", "exit")

	assert.Contains(t, out, "Planejamento atualizado a partir do servidor.")
	assert.Contains(t, out, "Planejamento enviado ao servidor.")
	salaries, _ := (<-pushed)["salaryByMonth"].(map[string]any)
	assert.EqualValues(t, 7100, salaries["2024-03"])
}

func TestCommands_QuickAndChat(t *testing.T) {
	h := newHarness(t)
	var failChat atomic.Bool
	h.handle("/api/quick-entry", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"description": readJSON(r)["text"], "amount": 50})
	}, http.MethodPost)
	h.handle("/api/assistant/chat", func(w http.ResponseWriter, r *http.Request) {
		if failChat.Load() {
			writeJSON(w, http.StatusBadGateway, map[string]any{"error": "modelo fora do ar"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"conversationId":   "c1",
			"assistantMessage": "Você gastou R$ 50,00.",
			"actions":          []any{map[string]any{"type": "report", "summary": "Mercado: R$ 50,00"}},
		})
	}, http.MethodPost)
	h.login(t)

	out := h.run("quick mercado 50", "chat quanto gastei?", "exit")

	assert.Contains(t, out, "Registrado: mercado 50 — R$ 50,00")
	assert.Contains(t, out, "assistente: Você gastou R$ 50,00.")
	assert.Contains(t, out, "  ✓ Mercado: R$ 50,00")
	assert.Contains(t, out, "Sugestões: Quanto gastei esse mês?")

	failChat.Store(true)
	out = h.run("chat", "oi", "", "chat-reset", "exit")
	assert.Contains(t, out, "assistente: modelo fora do ar")
	assert.Contains(t, out, "Nova conversa iniciada.")

	open, err := h.svc.Prefs.ChatOpen(context.Background())
	require.NoError(t, err)
	assert.False(t, open, "leaving the chat closes it")

	id, err := h.svc.Assistant.ConversationID(context.Background())
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestCommands_TelegramAndExport(t *testing.T) {
	h := newHarness(t)
	h.handle("/api/telegram/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"connected": false})
	}, http.MethodGet)
	h.handle("/api/telegram/link-code", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"code": "XYZ789"})
	}, http.MethodPost)
	h.handle("/api/admin/exports/expenses.csv", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("month") == "2024-02" {
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("acesso negado"))
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("a,b\n1,2\n"))
	}, http.MethodGet)
	h.login(t)

	out := h.run("telegram", "telegram-link", "export 2024-03", "export 2024-02", "export março", "exit")

	assert.Contains(t, out, "Telegram não vinculado.")
	assert.Contains(t, out, "Código de vínculo do Telegram: XYZ789")
	assert.Contains(t, out, "Despesas de Março 2024 exportadas")
	assert.Contains(t, out, "Erro: acesso negado")
	assert.Contains(t, out, "Erro: Mês inválido, use AAAA-MM.")

	data, err := os.ReadFile(filepath.Join(h.exportDir, "expenses_2024-03.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestCommands_DashboardIsCachedUntilEntriesChange(t *testing.T) {
	h := newHarness(t)
	var summaries atomic.Int32
	h.handle("/api/dashboard/summary", func(w http.ResponseWriter, r *http.Request) {
		summaries.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{"balance": 1200, "byCategory": map[string]any{"Casa": 300}})
	}, http.MethodGet)
	h.handle("/api/cards", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	}, http.MethodGet)
	h.handle("/api/credit/overview", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{map[string]any{"cardId": "c1", "name": "Nubank", "invoiceAmount": 99}})
	}, http.MethodGet)
	h.login(t)
	h.month(t, "2024-03")

	changes := make(chan events.Event, 1)
	h.out.Reset()
	app := NewApp(Options{Services: h.svc, Session: h.session, Timezone: "UTC", Changes: changes, Out: &h.out})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go app.watchChanges(ctx)

	require.False(t, app.dispatch(ctx, "dashboard"))
	require.False(t, app.dispatch(ctx, "dash"))
	assert.EqualValues(t, 1, summaries.Load())
	assert.Contains(t, h.out.String(), "Saldo:            R$ 1.200,00")
	assert.Contains(t, h.out.String(), "Nubank")

	changes <- events.NewEntriesChanged("entries", "e1")
	require.Eventually(t, func() bool {
		_, ok := app.cachedDashboard("2024-03")
		return !ok
	}, time.Second, 5*time.Millisecond)

	require.False(t, app.dispatch(ctx, "dashboard"))
	assert.EqualValues(t, 2, summaries.Load())
}

func TestApp_HealthMessages(t *testing.T) {
	h := newHarness(t)
	app := h.app()

	app.setHealth(services.HealthStatus{Available: true})
	assert.Empty(t, h.out.String(), "the first good probe is silent")

	app.setHealth(services.HealthStatus{Available: false})
	assert.Contains(t, h.out.String(), services.HealthUnavailableMessage)
	assert.Contains(t, app.status(context.Background()), "offline")

	app.setHealth(services.HealthStatus{Available: true})
	assert.Contains(t, h.out.String(), "API disponível novamente")
	assert.NotContains(t, app.status(context.Background()), "offline")
}

func TestCommands_HealthAndStatus(t *testing.T) {
	h := newHarness(t)
	h.handle("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}, http.MethodGet)

	out := h.run("status", "health", "status", "exit")

	assert.Contains(t, out, "Sessão:  nenhuma")
	assert.Contains(t, out, "API:     não verificada")
	assert.Contains(t, out, "API disponível.")
	assert.Contains(t, out, "API:     disponível")
}

func TestCommands_StatusListsBlockedEndpoints(t *testing.T) {
	h := newHarness(t)
	key := breaker.Key(http.MethodGet, "/api/cards")
	for i := 0; i < 6; i++ {
		h.tracker.RecordFailure(key)
	}

	out := h.run("status", "exit")

	assert.Contains(t, out, "Endpoints bloqueados:")
	assert.Contains(t, out, "GET /api/cards até")
	assert.Contains(t, out, "(6 falhas)")
}

func TestCommands_StatusWithoutBlocks(t *testing.T) {
	h := newHarness(t)
	out := h.run("status", "exit")
	assert.NotContains(t, out, "Endpoints bloqueados:")
}

func TestCommands_InvoicePay(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	got := make(chan map[string]any, 1)
	h.handle("/api/cards/{id}/invoices/pay", func(w http.ResponseWriter, r *http.Request) {
		body := readJSON(r)
		body["card"] = mux.Vars(r)["id"]
		got <- body
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}, http.MethodPost)

	out := h.run("invoice-pay c1", "1.234,56", "2024-03-10", "exit")

	assert.Contains(t, out, "Fatura paga com sucesso.")
	assert.Equal(t, map[string]any{"card": "c1", "amount": 1234.56, "paymentDate": "2024-03-10"}, <-got)
}

func TestCommands_InvoicePayRejectsBadInput(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	out := h.run("invoice-pay c1", "0", "", "invoice-pay c1", "10", "10/03/2024", "exit")

	assert.Contains(t, out, "Informe um valor maior que zero.")
	assert.Contains(t, out, "Data inválida, use AAAA-MM-DD.")
	assert.NotContains(t, out, "Fatura paga")
}

func TestCommands_SampleData(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	var hits atomic.Int32
	h.handle("/api/me/sample-data", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
	}, http.MethodPost)

	out := h.run("sample-data", "n", "sample-data", "s", "exit")

	assert.Equal(t, int32(1), hits.Load(), "declining the confirmation sends nothing")
	assert.Contains(t, out, "Dados de exemplo adicionados.")
}

func TestApp_RootWithWatchersRunning(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	var hits atomic.Int32
	h.handle("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1)%2 == 0 {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "down"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}, http.MethodGet)

	changes := make(chan events.Event)
	pr, pw := io.Pipe()
	go func() {
		defer pw.Close()
		for hits.Load() < 6 {
			if _, err := io.WriteString(pw, "help\n"); err != nil {
				return
			}
			select {
			case changes <- events.NewEntriesChanged("entries", "e1"):
			default:
			}
		}
		_, _ = io.WriteString(pw, "exit\n")
	}()

	h.out.Reset()
	app := NewApp(Options{
		Services:       h.svc,
		Session:        h.session,
		Tracker:        h.tracker,
		Changes:        changes,
		HealthInterval: time.Millisecond,
		Timezone:       "UTC",
		In:             pr,
		Out:            &h.out,
	})

	done := make(chan struct{})
	go func() {
		app.Root(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Root did not return")
	}
	assert.Contains(t, h.out.String(), "Até logo!")
	assert.Contains(t, h.out.String(), services.HealthUnavailableMessage)
	assert.GreaterOrEqual(t, hits.Load(), int32(6))
}
