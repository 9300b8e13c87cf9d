package platform

import (
	"github.com/aretw0/margin/pkg/core"
)

// New wires a repository and the domain service together:
//
//	svc, err := margin.New("./path/to/vault", margin.WithAutoInit(true))
//
// The URI argument is adapter-specific (a directory for 'fs', a database
// file for 'sqlite').
func New(uri string, opts ...Option) (*core.Service, error) {
	repo, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	svcOpts := []core.ServiceOption{}
	if o.logger != nil {
		svcOpts = append(svcOpts, core.WithLogger(o.logger))
	}
	if size, ok := o.config["event_buffer"].(int); ok && size > 0 {
		svcOpts = append(svcOpts, core.WithEventBuffer(size))
	}

	return core.NewService(repo, svcOpts...), nil
}
