package transcode

import (
	"os/exec"
	"path"

	"github.com/go-restream/restream/internal/resolver"
)

// ManifestName is the live playlist written by ffmpeg.
const ManifestName = "stream.m3u8"

// FirstChunkName is the first segment ffmpeg produces; used together
// with the manifest to probe startup, because the manifest can exist
// before any playable media does.
const FirstChunkName = "stream000.ts"

// FFmpegArgs builds the argument list for a live HLS transcode of one
// video. The output is a fixed-size sliding window of segments: old
// chunks are deleted as new ones are appended.
func FFmpegArgs(src resolver.Source, resolution string, bitrate string, outputDir string) []string {
	args := []string{"-re"}

	if src.Combined() {
		args = append(args,
			"-i", src.VideoURL,
			"-map", "0:v:0",
			"-map", "0:a:0",
		)
	} else {
		args = append(args,
			"-i", src.VideoURL,
			"-i", src.AudioURL,
			"-map", "0:v:0",
			"-map", "1:a:0",
		)
	}

	args = append(args,
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-tune", "zerolatency",
		"-pix_fmt", "yuv420p",
		"-s", resolution,
		"-b:v", bitrate,
		"-c:a", "aac",
		"-b:a", "128k",
		"-f", "hls",
		"-hls_time", "2",
		"-hls_list_size", "5",
		"-hls_flags", "delete_segments+append_list",
		"-hls_segment_filename", path.Join(outputDir, "stream%03d.ts"),
		path.Join(outputDir, ManifestName),
	)

	return args
}

// FFmpegCmd returns the transcode command for one video.
func FFmpegCmd(binary string, src resolver.Source, resolution string, bitrate string, outputDir string) *exec.Cmd {
	return exec.Command(binary, FFmpegArgs(src, resolution, bitrate, outputDir)...)
}
