package parse

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// An EDS holds the subset of an electronic data sheet the dashboard
// needs : the commissioned node id, the product name and the object
// names keyed by index.
type EDS struct {
	FilePath    string
	NodeId      uint8
	ProductName string
	indexNames  map[uint16]string
}

// Top-level sections are 4 hex digit object indexes, e.g. [1018]
var matchIdxRegExp = regexp.MustCompile(`^[0-9A-Fa-f]{4}$`)

// LoadEDS parses an EDS (or DCF) file. The node id is taken from the
// [DeviceComissioning] section when present, 0 otherwise.
func LoadEDS(filePath string) (*EDS, error) {
	edsFile, err := ini.Load(filePath)
	if err != nil {
		return nil, err
	}
	eds := &EDS{
		FilePath:   filePath,
		indexNames: make(map[uint16]string),
	}

	if section, err := edsFile.GetSection("DeviceInfo"); err == nil {
		eds.ProductName = section.Key("ProductName").String()
	}
	// The section name is misspelled in the standard itself
	if section, err := edsFile.GetSection("DeviceComissioning"); err == nil {
		nodeId, err := parseEDSNumber(section.Key("NodeID").String())
		if err == nil && nodeId > 0 && nodeId <= 0x7F {
			eds.NodeId = uint8(nodeId)
		}
	}

	for _, section := range edsFile.Sections() {
		sName := section.Name()
		if !matchIdxRegExp.MatchString(sName) {
			continue
		}
		index, err := strconv.ParseUint(sName, 16, 16)
		if err != nil {
			continue
		}
		eds.indexNames[uint16(index)] = section.Key("ParameterName").String()
	}
	return eds, nil
}

// IndexName returns the parameter name of an object index.
func (eds *EDS) IndexName(index uint16) (string, bool) {
	name, ok := eds.indexNames[index]
	return name, ok && name != ""
}

// ListEDSFiles returns the *.eds and *.dcf files in dir, non recursive.
func ListEDSFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading EDS directory : %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".eds" || ext == ".dcf" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

func parseEDSNumber(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		return strconv.ParseUint(raw[2:], 16, 64)
	}
	return strconv.ParseUint(raw, 10, 64)
}
