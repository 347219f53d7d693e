package global

import (
	"inkwell/config"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	Config *config.Config
	Logger zerolog.Logger
	DB     *gorm.DB
)
