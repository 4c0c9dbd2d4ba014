package app

import (
	httpserver "github.com/fairyhunter13/file-parser/internal/adapter/httpserver"
	"github.com/fairyhunter13/file-parser/internal/adapter/openai"
	"github.com/fairyhunter13/file-parser/internal/adapter/textextractor/delimited"
	"github.com/fairyhunter13/file-parser/internal/adapter/textextractor/pdftext"
	"github.com/fairyhunter13/file-parser/internal/adapter/textextractor/spreadsheet"
	"github.com/fairyhunter13/file-parser/internal/adapter/tokencount"
	"github.com/fairyhunter13/file-parser/internal/config"
	"github.com/fairyhunter13/file-parser/internal/usecase"
)

// NewServer wires parsers, the Files API client and the usecases from cfg.
func NewServer(cfg config.Config) *httpserver.Server {
	extract := usecase.NewExtractService(spreadsheet.New(), delimited.New(), pdftext.New())
	if cfg.TokenCountModel != "" {
		extract.Tokens = tokencount.NewCounter()
		extract.TokenModel = cfg.TokenCountModel
	}
	relay := usecase.NewRelayService(openai.NewFilesClient(cfg.OpenAIFilesURL, cfg.OpenAIAPIKey), cfg.TempDir())
	relayCheck, tempDirCheck := BuildReadinessChecks(cfg)
	return httpserver.NewServer(cfg, extract, relay, relayCheck, tempDirCheck)
}
