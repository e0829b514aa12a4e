package zipsrc

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildZip(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, contents := range files {
		f, err := w.Create(name)
		assert.NoError(t, err)
		_, err = f.Write(contents)
		assert.NoError(t, err)
	}
	assert.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractUniverseFileFindsUNVMember(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"readme.txt":     []byte("not the universe"),
		"Sales.UNV":      []byte("universe bytes here"),
		"other/side.car": []byte("ignored"),
	})

	unv, err := ExtractUniverseFile(data)
	assert.NoError(t, err)
	assert.Equal(t, "universe bytes here", string(unv))
}

func TestExtractUniverseFileErrorsWhenAbsent(t *testing.T) {
	data := buildZip(t, map[string][]byte{"readme.txt": []byte("nope")})
	_, err := ExtractUniverseFile(data)
	assert.Error(t, err)
}

func TestExtractSidecarRecoversKnownMembers(t *testing.T) {
	hiddenIDs := []byte{
		0x01, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00,
	}
	data := buildZip(t, map[string][]byte{
		"UNW_Storage/Connection/Connection":   []byte("SERVER=db01\r\nDATABASE=sales\r\n"),
		"UNW_Storage/Parameters/Parameters":   []byte("LONG_TEXT=200\r\n"),
		"UNW_Storage/Hidden_Items/Hidden_Items": hiddenIDs,
		"ResourceHeader/Descriptor;":          []byte("KIND=universe\r\n"),
	})

	sc, err := ExtractSidecar(data)
	assert.NoError(t, err)
	assert.Equal(t, "db01", sc.ConnectionInfo["SERVER"])
	assert.Equal(t, "sales", sc.ConnectionInfo["DATABASE"])
	assert.Equal(t, "200", sc.CustomParameters["LONG_TEXT"])
	assert.Equal(t, []uint32{1, 2}, sc.HiddenItemIDs)
	assert.Equal(t, "universe", sc.Descriptor["KIND"])
}

func TestExtractSidecarMissingMembersLeavesZeroValues(t *testing.T) {
	data := buildZip(t, map[string][]byte{"Sales.unv": []byte("x")})
	sc, err := ExtractSidecar(data)
	assert.NoError(t, err)
	assert.Empty(t, sc.ConnectionInfo)
	assert.Empty(t, sc.CustomParameters)
	assert.Empty(t, sc.HiddenItemIDs)
	assert.Empty(t, sc.Descriptor)
}
