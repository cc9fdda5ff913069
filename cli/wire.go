package cli

import (
	"github.com/francescoattisano63-source/cyber-omega-guardian/config"
	"github.com/francescoattisano63-source/cyber-omega-guardian/logging"
	"github.com/francescoattisano63-source/cyber-omega-guardian/vetting"
)

// newChecker wires the upstream adapters from cfg. rec may be nil.
func newChecker(cfg *config.Config, log logging.Logger, rec vetting.UpstreamRecorder) *vetting.Checker {
	opts := []vetting.Option{
		vetting.WithLogger(log.Named("vetting")),
		vetting.WithRecorder(rec),
		vetting.WithUserAgent(cfg.UserAgent),
	}

	var registration vetting.RegistrationSource
	if cfg.Whois.Enabled {
		registration = vetting.NewWhoisClient(cfg.Whois, opts...)
	}

	return vetting.NewChecker(
		vetting.NewVirusTotalClient(cfg.VirusTotal, opts...),
		registration,
		vetting.NewHIBPClient(cfg.HIBP, opts...),
		vetting.NewEmailRepClient(cfg.EmailRep, opts...),
	)
}
