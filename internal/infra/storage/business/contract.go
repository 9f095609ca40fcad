package business

import (
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
