package client

import apperrors "github.com/louisbranch/skyline/internal/platform/errors"

var errSourceMissing = apperrors.New(apperrors.CodeRepositoryUnavailable, "building source is not configured")
