package repository

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrJobNotFound  = errors.New("job not found")
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
