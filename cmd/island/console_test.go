package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/knowledge-island/internal/agents"
	"github.com/talgya/knowledge-island/internal/engine"
	"github.com/talgya/knowledge-island/internal/world"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want engine.Action
	}{
		{"pass", engine.Action{Kind: engine.ActionPass}},
		{"campus", engine.Action{Kind: engine.ActionBuildCampus, Destination: world.Path{}}},
		{"campus lrl", engine.Action{Kind: engine.ActionBuildCampus, Destination: world.MustParsePath("LRL")}},
		{"GO8 RR", engine.Action{Kind: engine.ActionBuildGO8, Destination: world.MustParsePath("RR")}},
		{"arc LB", engine.Action{Kind: engine.ActionObtainArc, Destination: world.MustParsePath("LB")}},
		{"3 R", engine.Action{Kind: engine.ActionObtainArc, Destination: world.MustParsePath("R")}},
		{"spinoff", engine.Action{Kind: engine.ActionStartSpinoff}},
		{"retrain mtv BPS", engine.Action{Kind: engine.ActionRetrain, From: world.StudentMTV, To: world.StudentBPS}},
		{"7 4 1", engine.Action{Kind: engine.ActionRetrain, From: world.StudentMTV, To: world.StudentBPS}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseCommand(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Kind, got.Kind)
			assert.Equal(t, tt.want.Destination.String(), got.Destination.String())
			assert.Equal(t, tt.want.From, got.From)
			assert.Equal(t, tt.want.To, got.To)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	for _, line := range []string{
		"",
		"build",
		"8",
		"arc LXR",
		"arc L R",
		"retrain MTV",
		"retrain MTV PHD",
		"pass now",
	} {
		_, err := parseCommand(line)
		assert.Error(t, err, "%q", line)
	}
}

func TestConsoleReprompts(t *testing.T) {
	g := engine.NewGameFromLayout(world.DefaultLayout())
	g.ThrowDice(12)

	in := strings.NewReader("hint arc\ncampus L\nbogus\nstatus\narc L\n")
	var out bytes.Buffer
	c := NewConsole(in, &out)

	a := c.Decide(g, world.UniA)
	assert.Equal(t, engine.ActionObtainArc, a.Kind)
	assert.Equal(t, "L", a.Destination.String())

	text := out.String()
	assert.Contains(t, text, "University A's turn")
	assert.Contains(t, text, `"L"`)
	assert.Contains(t, text, "Illegal action")
	assert.Contains(t, text, `unknown command "bogus"`)
	assert.Contains(t, text, "KPI")
}

func TestConsoleQuitOnEOF(t *testing.T) {
	g := engine.NewGameFromLayout(world.DefaultLayout())
	g.ThrowDice(12)

	quit := 0
	c := NewConsole(strings.NewReader(""), &bytes.Buffer{})
	c.Quit = func() { quit++ }

	assert.Equal(t, engine.ActionPass, c.Decide(g, world.UniA).Kind)
	assert.Equal(t, engine.ActionPass, c.Decide(g, world.UniA).Kind)
	assert.Equal(t, 1, quit)
}

func TestHints(t *testing.T) {
	g := engine.NewGameFromLayout(world.DefaultLayout())
	g.ThrowDice(12)

	arcs := hints(g, engine.ActionObtainArc)
	assert.Contains(t, arcs, `"L"`)
	assert.LessOrEqual(t, len(arcs), maxHints)
	assert.Equal(t, []string{"(none)"}, hints(g, engine.ActionBuildGO8), "not enough MJ and MMONEY")
	assert.Equal(t, []string{"(no sites for pass)"}, hints(g, engine.ActionPass))
}

func TestPlayHumanQuits(t *testing.T) {
	var out bytes.Buffer
	_, err := play(context.Background(), strings.NewReader("arc L\npass\n"), &out, 5, 1, "")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, out.String(), "A: obtain arc at \"L\"")
}

func TestPlayBotsOnly(t *testing.T) {
	var out bytes.Buffer
	_, err := play(context.Background(), strings.NewReader(""), &out, 5, 0, "Upgrader")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Rolled")
	assert.Contains(t, out.String(), "uni")
}

func TestPlayRejectsHumanCount(t *testing.T) {
	_, err := play(context.Background(), strings.NewReader(""), &bytes.Buffer{}, 1, 4, "")
	assert.Error(t, err)
}

func unsetConsoleEnv(t *testing.T) {
	for _, k := range []string{"ISLAND_SEED", "ISLAND_HUMANS", "ISLAND_BOT_ARCHETYPE", "ISLAND_DEBUG"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConsoleConfigDefaults(t *testing.T) {
	unsetConsoleEnv(t)
	cfg, err := loadConsoleConfig()
	require.NoError(t, err)
	assert.Equal(t, consoleConfig{Humans: 1, BotArchetype: agents.ArchExpansionist}, cfg)
}

func TestLoadConsoleConfigEnv(t *testing.T) {
	unsetConsoleEnv(t)
	t.Setenv("ISLAND_SEED", "42")
	t.Setenv("ISLAND_HUMANS", "0")
	t.Setenv("ISLAND_BOT_ARCHETYPE", agents.ArchScholar)
	t.Setenv("ISLAND_DEBUG", "true")

	cfg, err := loadConsoleConfig()
	require.NoError(t, err)
	assert.Equal(t, consoleConfig{Seed: 42, Humans: 0, BotArchetype: agents.ArchScholar, Debug: true}, cfg)
}

func TestLoadConsoleConfigRejects(t *testing.T) {
	tests := map[string]string{
		"ISLAND_HUMANS":        "three",
		"ISLAND_SEED":          "0x2a",
		"ISLAND_DEBUG":         "loud",
		"ISLAND_BOT_ARCHETYPE": "Gambler",
	}
	for k, v := range tests {
		t.Run(k, func(t *testing.T) {
			unsetConsoleEnv(t)
			t.Setenv(k, v)
			_, err := loadConsoleConfig()
			assert.Error(t, err)
		})
	}
}
