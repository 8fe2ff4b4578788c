package handler

import (
	"github.com/sirupsen/logrus"
	"rpmdiag/logging"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}
