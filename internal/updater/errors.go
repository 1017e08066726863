package updater

import "errors"

// Failure classes surfaced by the install/update flow. The orchestrator
// converts each into a single user-visible message; none of them should
// escape as an unhandled fault.
var (
	// ErrCatalogUnavailable wraps network, status, or parse failures while
	// fetching release metadata.
	ErrCatalogUnavailable = errors.New("release catalog unavailable")

	// ErrAssetNotFound means no release artifact matches the current
	// platform and architecture. This is an expected outcome on
	// unsupported platforms, not a crash condition.
	ErrAssetNotFound = errors.New("no matching release asset")

	// ErrDownloadFailed wraps network failures while transferring an asset.
	ErrDownloadFailed = errors.New("download failed")

	// ErrPermissionDenied means the executable bit could not be set. The
	// binary bytes are still correct, so launch is not blocked.
	ErrPermissionDenied = errors.New("could not mark binary executable")

	// ErrVersionProbeFailed means the installed binary could not report its
	// version. The update check is skipped and startup proceeds.
	ErrVersionProbeFailed = errors.New("version probe failed")
)
