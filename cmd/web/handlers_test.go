package main

import (
	"context"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/myrjola/kompassi/internal/e2etest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "KOMPASSI_ADDR":
		return "localhost:0", true
	case "KOMPASSI_SQLITE_URL":
		return ":memory:", true
	default:
		return "", false
	}
}

func startServer(t *testing.T) *e2etest.Server {
	t.Helper()
	server, err := e2etest.StartServer(context.Background(), io.Discard, testLookupEnv, run)
	require.NoError(t, err)
	return server
}

func TestHome(t *testing.T) {
	t.Parallel()

	server := startServer(t)
	client := server.Client()
	ctx := context.Background()

	doc, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Find("button:contains('Register')").Length())
	assert.Equal(t, 1, doc.Find("button:contains('Sign in')").Length())
	assert.Equal(t, 1, doc.Find("button:contains('Start the quiz')").Length())
}

func TestPasskeyRegistrationAndLogin(t *testing.T) {
	t.Parallel()

	server := startServer(t)
	client := server.Client()
	ctx := context.Background()

	doc, err := client.Register(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("button:contains('Log out')").Length())

	doc, err = client.Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("button:contains('Sign in')").Length())

	doc, err = client.Login(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("button:contains('Log out')").Length())
}

func TestQuizAnswering(t *testing.T) {
	t.Parallel()

	server := startServer(t)
	client := server.Client()
	ctx := context.Background()

	doc, err := client.GetDoc(ctx, "/quiz")
	require.NoError(t, err)
	require.Positive(t, doc.Find("article.question").Length())
	assert.Contains(t, doc.Find("p.progress").Text(), "0 of")

	doc, err = client.SubmitFormValues(ctx, "/quiz", "/quiz/answer", url.Values{
		"question_id": {"eco-taxes"},
		"value":       {"5"},
	})
	require.NoError(t, err)
	assert.Contains(t, doc.Find("p.progress").Text(), "1 of")

	checked := doc.Find("#question-eco-taxes input[value='5']")
	_, ok := checked.Attr("checked")
	assert.True(t, ok, "submitted answer should render as checked")
}

func TestQuizRejectsUnknownQuestion(t *testing.T) {
	t.Parallel()

	server := startServer(t)
	client := server.Client()
	ctx := context.Background()

	_, err := client.SubmitFormValues(ctx, "/quiz", "/quiz/answer", url.Values{
		"question_id": {"does-not-exist"},
		"value":       {"3"},
	})
	require.Error(t, err)
}

func TestResults(t *testing.T) {
	t.Parallel()

	server := startServer(t)
	client := server.Client()
	ctx := context.Background()

	_, err := client.SubmitFormValues(ctx, "/quiz", "/quiz/answer", url.Values{
		"question_id": {"eco-taxes"},
		"value":       {"5"},
	})
	require.NoError(t, err)

	doc, err := client.GetDoc(ctx, "/results")
	require.NoError(t, err)

	assert.Equal(t, 4, doc.Find(".axis").Length())
	assert.Positive(t, doc.Find("li.match").Length())
	assert.Contains(t, doc.Text(), "Party matches")
}

func TestResultsCountryFilter(t *testing.T) {
	t.Parallel()

	server := startServer(t)
	client := server.Client()
	ctx := context.Background()

	doc, err := client.GetDoc(ctx, "/results?country=se")
	require.NoError(t, err)

	option := doc.Find("select[name=country] option[value=se]")
	_, selected := option.Attr("selected")
	assert.True(t, selected)
}

func TestResetAnswers(t *testing.T) {
	t.Parallel()

	server := startServer(t)
	client := server.Client()
	ctx := context.Background()

	_, err := client.SubmitFormValues(ctx, "/quiz", "/quiz/answer", url.Values{
		"question_id": {"soc-drugs"},
		"value":       {"4"},
	})
	require.NoError(t, err)

	doc, err := client.SubmitForm(ctx, "/results", "/results/reset")
	require.NoError(t, err)
	assert.Contains(t, doc.Find("p.progress").Text(), "0 of")
}

func TestShareSnapshot(t *testing.T) {
	t.Parallel()

	server := startServer(t)
	client := server.Client()
	ctx := context.Background()

	_, err := client.SubmitFormValues(ctx, "/quiz", "/quiz/answer", url.Values{
		"question_id": {"glo-eu"},
		"value":       {"1"},
	})
	require.NoError(t, err)

	doc, err := client.SubmitForm(ctx, "/results", "/snapshots?country=fi")
	require.NoError(t, err)

	assert.True(t, strings.Contains(doc.Text(), "Shared results"))
	assert.Equal(t, 4, doc.Find(".axis").Length())

	// The results page links back to the freshly shared snapshot.
	doc, err = client.GetDoc(ctx, "/results")
	require.NoError(t, err)
	href, found := doc.Find(".shared-link a").Attr("href")
	require.True(t, found)
	assert.True(t, strings.HasPrefix(href, "/snapshots/"))
}

func TestUnknownSnapshotIsNotFound(t *testing.T) {
	t.Parallel()

	server := startServer(t)
	client := server.Client()
	ctx := context.Background()

	resp, err := client.Get(ctx, "/snapshots/no-such-id")
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	assert.Equal(t, 404, resp.StatusCode)
}
