package reports_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platehub/backoffice/internal/permissions"
	"github.com/platehub/backoffice/internal/platform/gotenberg"
	"github.com/platehub/backoffice/internal/reports"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/testing/webtest"
)

type fakePDF struct {
	html string
	opts gotenberg.Options
}

func (f *fakePDF) RenderHTML(_ context.Context, html string, opts gotenberg.Options) ([]byte, error) {
	f.html = html
	f.opts = opts
	return []byte("%PDF-1.7"), nil
}

func newRouter(env *webtest.Env, pdf reports.PDFRenderer) http.Handler {
	h := reports.NewHandler(env.Logger, reports.NewService(env.API.Client), pdf, env.Presenter)
	h.SetClockForTest(func() time.Time { return time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC) })
	r := chi.NewRouter()
	r.Route("/reports", h.MountRoutes)
	return r
}

func signIn(t *testing.T, env *webtest.Env) {
	env.SignIn(t, permissions.Flags{Role: permissions.RoleOwner, HasReports: true, IsMultiBranch: true})
	env.WithSession(t, func(sess *shared.Session) {
		id := int64(4)
		shared.SelectBranch(sess, &id)
	})
}

func salesReply(env *webtest.Env) {
	env.API.Reply("GET /reports/sales", http.StatusOK, map[string]any{
		"currency": "USD",
		"rows": []map[string]any{
			{"date": "2024-03-01", "orders": 12, "revenue": 310.25, "average_ticket": 25.85},
		},
	})
}

func TestFormWithoutQueryMakesNoCall(t *testing.T) {
	env := webtest.New(t)
	signIn(t, env)

	res := env.Get(t, newRouter(env, &fakePDF{}), "/reports")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Empty(t, env.API.Calls())
}

func TestPreviewUsesRangeAndBranch(t *testing.T) {
	env := webtest.New(t)
	signIn(t, env)
	salesReply(env)

	res := env.Get(t, newRouter(env, &fakePDF{}), "/reports?type=sales&from=2024-03-01&to=2024-03-07")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "310.25")

	q := env.API.CallsTo("GET /reports/sales")[0].Query
	assert.Equal(t, "2024-03-01", q.Get("from"))
	assert.Equal(t, "2024-03-07", q.Get("to"))
	assert.Equal(t, "4", q.Get("branch_id"))
}

func TestUnknownTypeIsRejected(t *testing.T) {
	env := webtest.New(t)
	signIn(t, env)

	res := env.Get(t, newRouter(env, &fakePDF{}), "/reports?type=payroll")
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "Choose a report type")
	assert.Empty(t, env.API.Calls())
}

func TestExportCSV(t *testing.T) {
	env := webtest.New(t)
	signIn(t, env)
	salesReply(env)

	res := env.Get(t, newRouter(env, &fakePDF{}), "/reports/export.csv?type=sales&from=2024-03-01&to=2024-03-01")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "text/csv; charset=utf-8", res.Header().Get("Content-Type"))
	assert.Contains(t, res.Header().Get("Content-Disposition"), "sales-2024-03-01-2024-03-01.csv")
	assert.Contains(t, res.Body.String(), "2024-03-01,12,0,310.25,25.85")
}

func TestExportPDFRendersReportTemplate(t *testing.T) {
	env := webtest.New(t)
	signIn(t, env)
	salesReply(env)
	pdf := &fakePDF{}

	res := env.Get(t, newRouter(env, pdf), "/reports/export.pdf?type=sales")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "application/pdf", res.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.7", res.Body.String())
	assert.Contains(t, pdf.html, "Sales report")
	assert.True(t, pdf.opts.Landscape)
}
