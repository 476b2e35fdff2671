package parse

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/samsamfire/canmon/pkg/msg"
)

var ErrNotDecodable = errors.New("parse : message cannot be decoded")

// A Parser implements the table's decode capability. It is stateless
// apart from the loaded EDS files, which supply node and object names.
type Parser struct {
	logger *slog.Logger
	eds    map[uint8]*EDS
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		logger: logger.With("service", "parse"),
		eds:    make(map[uint8]*EDS),
	}
}

// AddEDS registers an EDS file for the node id it was commissioned for.
func (p *Parser) AddEDS(eds *EDS) {
	p.eds[eds.NodeId] = eds
	p.logger.Info("loaded EDS", "node", eds.NodeId, "name", eds.ProductName)
}

// LoadEDSDirectory loads every *.eds file found in dir. Files that fail
// to parse are skipped with a warning, never fatal.
func (p *Parser) LoadEDSDirectory(dir string) error {
	files, err := ListEDSFiles(dir)
	if err != nil {
		return err
	}
	for _, path := range files {
		eds, err := LoadEDS(path)
		if err != nil {
			p.logger.Warn("skipping EDS file", "path", path, "error", err)
			continue
		}
		p.AddEDS(eds)
	}
	return nil
}

// NodeName returns the commissioned product name for a node, or its
// numeric fallback when no EDS is loaded for it.
func (p *Parser) NodeName(node uint8) string {
	if eds, ok := p.eds[node]; ok && eds.ProductName != "" {
		return eds.ProductName
	}
	return fmt.Sprintf("0x%02X", node)
}

// Decode implements [msg.Decoder]. A message that cannot be decoded
// returns an error so the table keeps its raw hex fallback.
func (p *Parser) Decode(m msg.Message) (string, error) {
	switch m.Type {
	case msg.TypeHeartbeat:
		return p.decodeHeartbeat(m)
	case msg.TypeNMT:
		return p.decodeNMT(m)
	case msg.TypeSync:
		return p.decodeSync(m)
	case msg.TypeTime:
		return p.decodeTime(m)
	case msg.TypeEmcy:
		return p.decodeEmergency(m)
	case msg.TypeSDO:
		return p.decodeSDO(m)
	case msg.TypePDO:
		return p.decodePDO(m)
	default:
		return "", ErrNotDecodable
	}
}
