package filter

// Reason describes why a post was rejected.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonUnreachable
	ReasonUnknownHost
	ReasonNotImage
	ReasonPortrait
	ReasonLowResolution
	ReasonDownloaded
)

// String is the message shown to the user.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "passed"
	case ReasonUnreachable:
		// Any failure to reach the URL is reported as a 404.
		return "404 error"
	case ReasonUnknownHost:
		return "unknown URL"
	case ReasonNotImage:
		return "no image in this post"
	case ReasonPortrait:
		return "skipping portrait image"
	case ReasonLowResolution:
		return "skipping low resolution image"
	case ReasonDownloaded:
		return "already downloaded"
	default:
		return "unknown reason"
	}
}

// Label is a short identifier, suitable for metric labels.
func (r Reason) Label() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonUnreachable:
		return "unreachable"
	case ReasonUnknownHost:
		return "unknown_host"
	case ReasonNotImage:
		return "not_image"
	case ReasonPortrait:
		return "portrait"
	case ReasonLowResolution:
		return "low_resolution"
	case ReasonDownloaded:
		return "downloaded"
	default:
		return "unknown"
	}
}
