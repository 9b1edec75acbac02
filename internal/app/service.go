package app

import (
	"hpi-packager/internal/adapters"
	"hpi-packager/internal/ports"
)

type Service struct {
	SpecLoader   ports.ProjectSpecPort
	Archives     ports.ArchiveFactoryPort
	OutputReader ports.OutputReaderPort
}

func NewService() Service {
	return Service{
		SpecLoader:   adapters.NewSpecFileAdapter(),
		Archives:     adapters.NewZipArchiveFactory(),
		OutputReader: adapters.NewOutputReaderAdapter(),
	}
}
