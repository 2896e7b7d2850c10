package version

// Version is replaced at build time:
//
//	go build -ldflags "-X github.com/tradelab/indicore/pkg/version.Version=v1.2.0" ./cmd/indicore
var Version = "v0.1.0-dev"
