package sheet

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dustinanglin/StrikeGen/internal/builder"
	"github.com/dustinanglin/StrikeGen/internal/character"
	"github.com/dustinanglin/StrikeGen/internal/rulebook"
)

func sampleSheet(t *testing.T) *Sheet {
	t.Helper()
	rb, err := rulebook.Load("")
	require.NoError(t, err)

	ch := character.New()
	for key, value := range map[string]string{
		builder.KeyName:       "Brambles",
		builder.KeyLevel:      "4",
		builder.KeyBackground: "Caravan Guard",
		builder.KeyOrigin:     "Human",
		builder.KeyClass:      "Warlord",
		builder.KeyRole:       "Leader",
	} {
		require.NoError(t, builder.Apply(ch, rb, key, value))
	}
	require.NoError(t, builder.Apply(ch, rb, builder.KeyKitFirst, "Flight"))
	require.NoError(t, builder.Apply(ch, rb, "feat-2", "Second Wind"))
	require.NoError(t, builder.Apply(ch, rb, builder.KeyExtraSkill, "Whittling"))

	return Build(ch, rb)
}

func TestBuild(t *testing.T) {
	s := sampleSheet(t)

	assert.Equal(t, "Brambles", s.Name)
	assert.Equal(t, 4, s.Level)
	assert.Equal(t, 2, s.Wealth)
	assert.Len(t, s.Tricks, 3)

	require.Len(t, s.Kits, 1)
	assert.Equal(t, "Flight", s.Kits[0].Kit)
	assert.Equal(t, []string{"Hover", "Soar"}, s.Kits[0].Powers)

	var free []string
	for _, e := range s.Skills {
		if e.Source == "free" {
			free = append(free, e.Name)
		}
	}
	assert.Equal(t, []string{"Whittling"}, free)

	assert.Equal(t, "Caravan Guard", s.Responses[builder.KeyBackground],
		"raw responses ride along for re-import")
}

func TestRenderJSON_RoundTrip(t *testing.T) {
	s := sampleSheet(t)

	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, s))

	var decoded Sheet
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, s.Name, decoded.Name)
	assert.Equal(t, s.Responses, decoded.Responses)
}

func TestRenderMarkdown(t *testing.T) {
	s := sampleSheet(t)

	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "# Brambles")
	assert.Contains(t, out, "| Level | 4 |")
	assert.Contains(t, out, "## Skills")
	assert.Contains(t, out, "- Whittling (free)")
	assert.Contains(t, out, "## Kit: Flight")
}

func TestRenderText(t *testing.T) {
	s := sampleSheet(t)

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "Brambles")
	assert.Contains(t, out, "Endurance")
	assert.Contains(t, out, "Background", "source column is title-cased")
	assert.Contains(t, out, "Kit: Flight")
}

func TestRenderText_EmptySheet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, &Sheet{Level: 1}))
	assert.Contains(t, buf.String(), "Unnamed Character")
}
