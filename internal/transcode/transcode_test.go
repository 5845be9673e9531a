package transcode

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/go-restream/restream/internal/resolver"
)

func count(args []string, value string) int {
	n := 0
	for _, arg := range args {
		if arg == value {
			n++
		}
	}
	return n
}

func TestFFmpegArgsCombinedSource(t *testing.T) {
	src := resolver.Source{
		VideoURL: "https://cdn.example.com/media",
		AudioURL: "https://cdn.example.com/media",
	}

	args := FFmpegArgs(src, "1280x720", "2500k", "/tmp/hls")

	// single input, both streams mapped from it
	require.Equal(t, 1, count(args, "-i"))
	require.Contains(t, args, "0:a:0")
	require.NotContains(t, args, "1:a:0")
}

func TestFFmpegArgsSplitSource(t *testing.T) {
	src := resolver.Source{
		VideoURL: "https://cdn.example.com/video",
		AudioURL: "https://cdn.example.com/audio",
	}

	args := FFmpegArgs(src, "1280x720", "2500k", "/tmp/hls")

	// two inputs, audio mapped from the second
	require.Equal(t, 2, count(args, "-i"))
	require.Contains(t, args, "1:a:0")
}

func TestFFmpegArgsSlidingWindow(t *testing.T) {
	src := resolver.Source{
		VideoURL: "https://cdn.example.com/media",
		AudioURL: "https://cdn.example.com/media",
	}

	args := FFmpegArgs(src, "854x480", "1000k", "/out")

	require.Contains(t, args, "delete_segments+append_list")
	require.Contains(t, args, "/out/"+ManifestName)
	require.Contains(t, args, "854x480")
	require.Contains(t, args, "1000k")
}

func TestCleanOutputDir(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"stream.m3u8", "stream000.ts", "stream001.ts", "keep.txt"} {
		require.NoError(t, os.WriteFile(path.Join(dir, name), []byte("x"), 0644))
	}

	s := New(Config{OutputDir: dir})
	require.NoError(t, s.CleanOutputDir())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "keep.txt", entries[0].Name())
}

func TestCleanOutputDirMissing(t *testing.T) {
	s := New(Config{OutputDir: path.Join(t.TempDir(), "missing")})
	require.Error(t, s.CleanOutputDir())
}

func newStartupProcess(dir string) *Process {
	return &Process{
		logger:       zerolog.Nop(),
		manifestPath: path.Join(dir, ManifestName),
		chunkPath:    path.Join(dir, FirstChunkName),
		done:         make(chan struct{}),
	}
}

func TestWaitStartupBothFilesPresent(t *testing.T) {
	dir := t.TempDir()
	p := newStartupProcess(dir)

	require.NoError(t, os.WriteFile(p.manifestPath, []byte("#EXTM3U\n"), 0644))
	require.NoError(t, os.WriteFile(p.chunkPath, []byte("chunk"), 0644))

	require.True(t, p.WaitStartup(context.Background()))
}

func TestWaitStartupManifestAloneNotEnough(t *testing.T) {
	// a manifest can exist before any playable chunk does; if the
	// process dies at that point the startup has failed
	dir := t.TempDir()
	p := newStartupProcess(dir)

	require.NoError(t, os.WriteFile(p.manifestPath, []byte("#EXTM3U\n"), 0644))
	close(p.done)

	require.False(t, p.WaitStartup(context.Background()))
}

func TestWaitStartupEmptyFilesNotEnough(t *testing.T) {
	dir := t.TempDir()
	p := newStartupProcess(dir)

	require.NoError(t, os.WriteFile(p.manifestPath, nil, 0644))
	require.NoError(t, os.WriteFile(p.chunkPath, nil, 0644))
	close(p.done)

	require.False(t, p.WaitStartup(context.Background()))
}

func TestWaitStartupCancelledContext(t *testing.T) {
	p := newStartupProcess(t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.False(t, p.WaitStartup(ctx))
}

func TestTerminateExitedProcessIsNoop(t *testing.T) {
	done := make(chan struct{})
	close(done)

	p := &Process{
		logger: zerolog.Nop(),
		done:   done,
	}

	// an exited process has no command to signal; double terminate
	// must also be a no-op
	p.Terminate()
	p.Terminate()

	require.True(t, p.Exited())
}
