package corpus

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ManifestVersion identifies the manifest document format.
const ManifestVersion = "ryu-corpus/1"

// Manifest pins a recorded corpus: the vectors file, its checksum, the case
// count, and the replay result digest.
type Manifest struct {
	Version       string `json:"version"`
	VectorsFile   string `json:"vectors_file"`
	VectorsSHA256 string `json:"vectors_sha256"`
	CaseCount     int    `json:"case_count"`
	ResultDigest  string `json:"result_digest"`
}

// LoadManifest reads, decodes, and validates a manifest document. Decoding
// is strict: unknown fields and trailing content are rejected.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Wrap(InternalIO, -1, "read manifest", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, Wrap(InvalidManifest, -1, "decode manifest json", err)
	}
	if err := ensureSingleJSONDocument(dec); err != nil {
		return nil, Wrap(InvalidManifest, -1, "decode manifest json", err)
	}
	if err := ValidateManifest(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func ensureSingleJSONDocument(dec *json.Decoder) error {
	var trailing any
	if err := dec.Decode(&trailing); err != io.EOF {
		if err == nil {
			return fmt.Errorf("unexpected trailing json content")
		}
		return fmt.Errorf("decode trailing json token: %w", err)
	}
	return nil
}

// ValidateManifest validates manifest semantics.
func ValidateManifest(m *Manifest) error {
	if m == nil {
		return New(InvalidManifest, -1, "manifest is nil")
	}
	if m.Version != ManifestVersion {
		return New(InvalidManifest, -1, fmt.Sprintf("version must be %q, have %q", ManifestVersion, m.Version))
	}
	if m.VectorsFile == "" {
		return New(InvalidManifest, -1, "vectors_file is required")
	}
	if filepath.IsAbs(m.VectorsFile) || m.VectorsFile != filepath.ToSlash(filepath.Clean(m.VectorsFile)) {
		return New(InvalidManifest, -1, fmt.Sprintf("vectors_file must be a clean relative path, have %q", m.VectorsFile))
	}
	if !isHex64(m.VectorsSHA256) {
		return New(InvalidManifest, -1, "vectors_sha256 must be 64 lowercase hex digits")
	}
	if m.CaseCount < 1 {
		return New(InvalidManifest, -1, "case_count must be >= 1")
	}
	if !isHex64(m.ResultDigest) {
		return New(InvalidManifest, -1, "result_digest must be 64 lowercase hex digits")
	}
	return nil
}

func isHex64(s string) bool {
	if len(s) != 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') {
			continue
		}
		return false
	}
	return true
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// WriteCorpus generates count vectors, writes the CSV and its manifest into
// dir atomically, and returns the manifest.
func WriteCorpus(dir string, count int) (*Manifest, error) {
	if count < 1 {
		return nil, New(CLIUsage, -1, "corpus count must be >= 1")
	}
	vectors := Generate(count)
	var buf bytes.Buffer
	if err := WriteVectors(&buf, vectors); err != nil {
		return nil, err
	}
	rep := Replay(vectors)

	m := &Manifest{
		Version:       ManifestVersion,
		VectorsFile:   "vectors.csv",
		VectorsSHA256: sha256Hex(buf.Bytes()),
		CaseCount:     rep.CaseCount,
		ResultDigest:  rep.Digest,
	}
	if err := WriteFileAtomic(filepath.Join(dir, m.VectorsFile), buf.Bytes()); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, Wrap(InternalError, -1, "encode manifest", err)
	}
	data = append(data, '\n')
	if err := WriteFileAtomic(filepath.Join(dir, "manifest.json"), data); err != nil {
		return nil, err
	}
	return m, nil
}

// Check loads the manifest at manifestPath, verifies the vectors file
// checksum, replays every vector, and compares case count and result
// digest. The returned report is non-nil whenever a replay ran, even on
// failure, so callers can surface individual mismatches.
func Check(manifestPath string) (*Report, error) {
	m, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	vecPath := filepath.Join(filepath.Dir(manifestPath), filepath.FromSlash(m.VectorsFile))
	data, err := os.ReadFile(vecPath)
	if err != nil {
		return nil, Wrap(InternalIO, -1, "read vectors", err)
	}
	if sum := sha256Hex(data); sum != m.VectorsSHA256 {
		return nil, New(ChecksumMismatch, -1,
			fmt.Sprintf("vectors checksum drift: manifest %s, file %s", m.VectorsSHA256, sum))
	}
	vectors, err := ReadVectors(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	rep := Replay(vectors)
	if rep.CaseCount != m.CaseCount {
		return &rep, New(ReplayMismatch, -1,
			fmt.Sprintf("case count drift: manifest %d, replay %d", m.CaseCount, rep.CaseCount))
	}
	if n := len(rep.Mismatches); n != 0 {
		return &rep, New(ReplayMismatch, -1,
			fmt.Sprintf("%d renderings drifted, first: %s", n, rep.Mismatches[0]))
	}
	if rep.Digest != m.ResultDigest {
		return &rep, New(ReplayMismatch, -1,
			fmt.Sprintf("result digest drift: manifest %s, replay %s", m.ResultDigest, rep.Digest))
	}
	return &rep, nil
}

// WriteFileAtomic writes data to path via a temp file in the same
// directory: write, fsync, close, rename. On failure the temp file is
// removed and the target is left untouched.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".ryu-corpus-*.tmp")
	if err != nil {
		return Wrap(InternalIO, -1, "create temp file", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			if closeErr := tmp.Close(); closeErr != nil {
				_ = closeErr
			}
			if removeErr := os.Remove(tmpPath); removeErr != nil {
				_ = removeErr
			}
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return Wrap(InternalIO, -1, "write temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		return Wrap(InternalIO, -1, "sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return Wrap(InternalIO, -1, "close temp file", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return Wrap(InternalIO, -1, "rename temp to final", err)
	}
	success = true

	syncDir(dir)
	return nil
}

// syncDir fsyncs the directory so the rename survives a crash. Errors are
// ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	if syncErr := d.Sync(); syncErr != nil {
		if closeErr := d.Close(); closeErr != nil {
			return
		}
		return
	}
	if closeErr := d.Close(); closeErr != nil {
		return
	}
}
