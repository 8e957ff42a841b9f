package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospos-dev/hospos/internal/api"
	"github.com/hospos-dev/hospos/internal/document"
	"github.com/hospos-dev/hospos/internal/workflow"
)

func TestPrompterLine(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("  Asha Verma  \n"), &out)

	assert.Equal(t, "Asha Verma", p.line("Full name"))
	assert.False(t, p.done())
}

func TestPrompterRequiredRepromptsOnEmpty(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("\n\nSL100000001\n"), &out)

	assert.Equal(t, "SL100000001", p.required("Slip number"))
	assert.Contains(t, out.String(), "This field is required.")
}

func TestPrompterRequiredReturnsWhenInputEnds(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader(""), &out)

	done := make(chan string, 1)
	go func() { done <- p.required("Email") }()

	select {
	case v := <-done:
		assert.Empty(t, v)
	case <-time.After(time.Second):
		t.Fatal("required did not return after input ended")
	}
	assert.True(t, p.done())
	assert.Empty(t, p.line("Choose"))
}

func TestPrompterConfirmDefaultsToNo(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("\nmaybe\ny\n"), &out)

	assert.False(t, p.confirm("Delete patient #1?"))
	assert.False(t, p.confirm("Delete patient #1?"))
	assert.True(t, p.confirm("Delete patient #1?"))
}

type emptyToken struct{}

func (emptyToken) Token() string { return "" }

func TestReceptionLoopExitsWhenInputEnds(t *testing.T) {
	c := api.NewClient("http://127.0.0.1:0", emptyToken{}, zerolog.Nop())
	g := document.NewGenerator(t.TempDir(), document.Letterhead{Name: "City General Hospital"})
	r := workflow.NewReception(c, g, zerolog.Nop())

	var out bytes.Buffer
	p := newPrompter(strings.NewReader(""), &out)

	finished := make(chan struct{})
	go func() {
		runReception(context.Background(), r, p)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("reception loop kept running after input ended")
	}
	require.True(t, p.done())
}
