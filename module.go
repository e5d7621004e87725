package edunet

import (
	"bytes"

	"github.com/rs/zerolog/log"
)

//go:generate mockgen -destination ./internal/mocks/mock_module.go -package mocks github.com/davidkroell/edunet Module

// Module is a single protocol layer. ReadPacket gets a stream positioned at the start of the
// layer's header. It decodes the header, looks up the next module by the layer's type code and
// hands over the rest of the stream. Malformed packets and unknown type codes are logged and
// dropped, nothing is returned to the caller.
type Module interface {
	ReadPacket(stream *bytes.Reader, device Device)
	RegisterNextLayerModule(typeCode uint16, module Module)
}

// ModuleFunc lets an ordinary function terminate a dispatch chain.
type ModuleFunc func(stream *bytes.Reader, device Device)

func (f ModuleFunc) ReadPacket(stream *bytes.Reader, device Device) {
	f(stream, device)
}

func (f ModuleFunc) RegisterNextLayerModule(typeCode uint16, _ Module) {
	log.Warn().Uint16("typeCode", typeCode).Msg("terminal module does not dispatch, ignoring registration")
}
