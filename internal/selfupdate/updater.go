package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum mismatch")
)

type UpdateInput struct {
	CurrentVersion string
	// TargetVersion skips the release lookup when set.
	TargetVersion string
}

// UpdateProgress is reported once per stage: check, download, verify,
// extract, apply, done.
type UpdateProgress struct {
	Stage   string
	Message string
}

func (c *Checker) Update(ctx context.Context, in *UpdateInput, progress func(UpdateProgress)) error {
	if in.CurrentVersion == "(devel)" || in.CurrentVersion == "" {
		return ErrDevBuild
	}
	if progress == nil {
		progress = func(UpdateProgress) {}
	}

	tag := in.TargetVersion
	if tag == "" {
		progress(UpdateProgress{Stage: "check", Message: "Checking for the latest release..."})
		res, err := c.Check(ctx, &CheckInput{Version: in.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !res.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = res.LatestVersion
	}

	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}
	releaseURL := fmt.Sprintf("%s/%s/%s/releases/download/%s", c.downloadBaseURL, c.owner, c.repo, tag)

	progress(UpdateProgress{Stage: "download", Message: "Downloading " + tag + "..."})
	archive, err := c.fetch(ctx, releaseURL+"/"+asset)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	progress(UpdateProgress{Stage: "verify", Message: "Verifying checksum..."})
	sums, err := c.fetch(ctx, releaseURL+"/checksums.txt")
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(sums)[asset]
	if !ok {
		return fmt.Errorf("%w: %s not listed in checksums.txt", ErrChecksum, asset)
	}
	if err := verifyChecksum(archive, want); err != nil {
		return err
	}

	progress(UpdateProgress{Stage: "extract", Message: "Extracting binary..."})
	bin, err := extractBinary(archive, asset)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	progress(UpdateProgress{Stage: "apply", Message: "Replacing executable..."})
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		target = resolved
	}
	if err := replaceFile(target, bin); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	progress(UpdateProgress{Stage: "done", Message: "Updated to " + tag})
	return nil
}

// assetNameFor follows the release archive naming: dermaquiz_<os>_<arch>,
// a single universal archive for macOS and zip on Windows.
func assetNameFor(goos, goarch string) (string, error) {
	switch goarch {
	case "amd64", "arm64", "386":
	default:
		if goos != "darwin" {
			return "", fmt.Errorf("unsupported architecture %s", goarch)
		}
	}
	switch goos {
	case "darwin":
		return binaryName + "_darwin_all.tar.gz", nil
	case "linux":
		return fmt.Sprintf("%s_linux_%s.tar.gz", binaryName, goarch), nil
	case "windows":
		return fmt.Sprintf("%s_windows_%s.zip", binaryName, goarch), nil
	}
	return "", fmt.Errorf("unsupported operating system %s", goos)
}

func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// parseChecksums reads sha256sum output: "<hex>  <file>" per line.
func parseChecksums(data []byte) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		f := strings.Fields(line)
		if len(f) == 2 {
			out[f[1]] = strings.ToLower(f[0])
		}
	}
	return out
}

func verifyChecksum(data []byte, wantHex string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != strings.ToLower(wantHex) {
		return fmt.Errorf("%w: want %s, got %s", ErrChecksum, wantHex, got)
	}
	return nil
}

func extractBinary(archive []byte, asset string) ([]byte, error) {
	if strings.HasSuffix(asset, ".zip") {
		return fromZip(archive, binaryName+".exe")
	}
	return fromTarGz(archive, binaryName)
}

func fromTarGz(data []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s not in archive", name)
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeReg && path.Base(hdr.Name) == name {
			return io.ReadAll(tr)
		}
	}
}

func fromZip(data []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	for _, f := range zr.File {
		if path.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s not in archive", name)
}

// replaceFile writes data next to target and renames it over target,
// keeping target's mode. The temp copy is re-hashed before the rename.
func replaceFile(target string, data []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+binaryName+"-update-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	written, err := os.ReadFile(tmpName)
	if err != nil {
		return err
	}
	if sha256.Sum256(written) != sha256.Sum256(data) {
		return fmt.Errorf("%w: temp file changed after write", ErrChecksum)
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(tmpName, target)
}
