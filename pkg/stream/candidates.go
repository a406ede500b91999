package stream

import (
	"net"
	"net/url"
	"strings"

	"github.com/samber/lo"

	"github.com/gwillem/rover/pkg/rover"
)

// CameraPort is where ESP32-style firmware usually serves its stream.
const CameraPort = "81"

// mjpegPaths are tried on the origin after the port-81 stream.
var mjpegPaths = []string{"/stream", "/mjpeg", "/video", "/?action=stream"}

// snapshotSuffixes are appended to the camera URL when no stream answers.
var snapshotSuffixes = []string{
	"/capture",
	"/snapshot",
	"/snapshot.jpg",
	"/snap.jpg",
	"/photo.jpg",
	"/jpg",
	"/image.jpg",
	"/bmp",
}

// Normalize defaults the scheme to http://. Path and query are kept as
// typed so an explicit stream URL is probed unchanged.
func Normalize(raw string) string {
	return rover.WithScheme(raw)
}

// Candidates lists the MJPEG URLs to probe for a normalized camera URL.
// A bare host expands to the well-known stream paths, port 81 first.
// A URL with a path is probed as given.
func Candidates(camera string) []string {
	u, err := url.Parse(camera)
	if err != nil || u.Host == "" {
		return []string{camera}
	}
	if u.Path != "" && u.Path != "/" {
		return []string{camera}
	}

	origin := u.Scheme + "://" + u.Host
	origin81 := origin
	if u.Port() != CameraPort {
		origin81 = u.Scheme + "://" + net.JoinHostPort(u.Hostname(), CameraPort)
	}

	candidates := make([]string, 0, len(mjpegPaths)+1)
	candidates = append(candidates, origin81+"/stream")
	for _, p := range mjpegPaths {
		candidates = append(candidates, origin+p)
	}
	return candidates
}

// SnapshotCandidates lists the still-image URLs to probe for a camera URL.
func SnapshotCandidates(camera string) []string {
	base := strings.TrimSuffix(camera, "/")
	return lo.Map(snapshotSuffixes, func(suffix string, _ int) string {
		return base + suffix
	})
}
