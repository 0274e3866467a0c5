package transcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_JSON(t *testing.T) {
	obj := Decode(`{"accountno": "001", "limits": {"daily": "500"}}`, FormatJSON)
	assert.Equal(t, "001", obj["accountno"])
	assert.Equal(t, map[string]any{"daily": "500"}, obj["limits"])
}

func TestDecode_MalformedJSONYieldsEmptyObject(t *testing.T) {
	assert.Equal(t, map[string]any{}, Decode(`{"accountno": `, FormatJSON))
	assert.Equal(t, map[string]any{}, Decode(`not json at all`, FormatJSON))
	assert.Equal(t, map[string]any{}, Decode(`null`, FormatJSON))
	assert.Equal(t, map[string]any{}, Decode("", FormatJSON))
}

func TestJSONRoundTrip(t *testing.T) {
	original := map[string]any{
		"accountno": "001",
		"flags":     map[string]any{"active": "true"},
	}
	encoded, err := Encode(original, FormatJSON)
	require.NoError(t, err)

	decoded := Decode(encoded, FormatJSON)
	assert.Equal(t, original, decoded)
}

func TestDecode_XML(t *testing.T) {
	obj := Decode(`<data><accountno>001</accountno><limits><daily>500</daily></limits></data>`, FormatXML)
	data, ok := obj["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "001", data["accountno"])
	assert.Equal(t, map[string]any{"daily": "500"}, data["limits"])
}

func TestDecode_XMLRepeatedSiblings(t *testing.T) {
	obj := Decode(`<data><row>a</row><row>b</row></data>`, FormatXML)
	data := obj["data"].(map[string]any)
	assert.Equal(t, []any{"a", "b"}, data["row"])
}

func TestDecode_MalformedXMLYieldsEmptyObject(t *testing.T) {
	assert.Equal(t, map[string]any{}, Decode(`<data><open>`, FormatXML))
	assert.Equal(t, map[string]any{}, Decode(`plain text`, FormatXML))
}

func TestXMLRoundTrip(t *testing.T) {
	original := `<data><accountno>001</accountno><limits><daily>500</daily></limits></data>`
	decoded := Decode(original, FormatXML)
	encoded, err := Encode(decoded, FormatXML)
	require.NoError(t, err)
	assert.Equal(t, original, encoded)
}

func TestEncode_XMLSortsKeys(t *testing.T) {
	encoded, err := Encode(map[string]any{"b": "2", "a": "1"}, FormatXML)
	require.NoError(t, err)
	assert.Equal(t, "<a>1</a><b>2</b>", encoded)
}

func TestEncode_XMLEscapesText(t *testing.T) {
	encoded, err := Encode(map[string]any{"note": "a < b & c"}, FormatXML)
	require.NoError(t, err)
	assert.Equal(t, "<note>a &lt; b &amp; c</note>", encoded)
}

func TestEmptyValue(t *testing.T) {
	assert.Equal(t, "{}", EmptyValue(FormatJSON))
	assert.Equal(t, "<data></data>", EmptyValue(FormatXML))
}
