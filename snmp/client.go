package snmp

import (
	"check_isam/config"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosnmp/gosnmp"
	"github.com/sirupsen/logrus"
)

// ErrNoData is returned when the agent answers but holds no value for an OID.
var ErrNoData = errors.New("no such object")

// Querier is the SNMP collaborator used by the checks.
type Querier interface {
	// Get fetches a single scalar.
	Get(ctx context.Context, oid string) (Variable, error)

	// Walk enumerates the subtree below oid in OID order. An empty subtree is not
	// an error; a row without a value is ErrNoData.
	Walk(ctx context.Context, oid string) ([]Variable, error)
}

// Client is a Querier backed by gosnmp, talking to exactly one agent.
type Client struct {
	g *gosnmp.GoSNMP

	log *logrus.Logger
}

// NewClient builds an unconnected client for host using the shared SNMP settings.
func NewClient(cfg config.SNMP, host, community string, log *logrus.Logger) (*Client, error) {

	g := &gosnmp.GoSNMP{
		Target:    host,
		Community: community,
		Port:      cfg.Port,
		Timeout:   cfg.Timeout,
		Retries:   cfg.Retries,
	}

	switch cfg.Version {
	case "1":
		g.Version = gosnmp.Version1

	case "2", "2c":
		g.Version = gosnmp.Version2c

	default:
		return nil, fmt.Errorf("unsupported SNMP version: %s", cfg.Version)
	}

	return &Client{g: g, log: log}, nil
}

// Connect opens the UDP socket to the agent.
func (c *Client) Connect() error {

	c.log.Debugf("Connecting to SNMP device at %s:%d", c.g.Target, c.g.Port)

	if err := c.g.Connect(); err != nil {

		return fmt.Errorf("error connecting to SNMP target %s: %w", c.g.Target, err)
	}

	return nil
}

// Close releases the socket opened by Connect.
func (c *Client) Close() error {

	if c.g.Conn == nil {

		return nil
	}

	return c.g.Conn.Close()
}

// Get fetches the scalar at oid. An exception or empty value is ErrNoData.
func (c *Client) Get(ctx context.Context, oid string) (Variable, error) {

	c.g.Context = ctx

	c.log.Debugf("Performing SNMP GET request on %s", oid)

	result, err := c.g.Get([]string{oid})

	if err != nil {

		return Variable{}, fmt.Errorf("snmp get %s: %w", oid, err)
	}

	if result.Error != gosnmp.NoError {

		return Variable{}, fmt.Errorf("snmp get %s: agent returned %v", oid, result.Error)
	}

	if len(result.Variables) == 0 {

		return Variable{}, fmt.Errorf("snmp get %s: %w", oid, ErrNoData)
	}

	v, ok := toVariable(result.Variables[0])

	if !ok {

		return Variable{}, fmt.Errorf("snmp get %s: %w", oid, ErrNoData)
	}

	return v, nil
}

// Walk returns every row below oid. A row carrying an exception instead of a
// value fails the whole walk with ErrNoData, since callers pair columns by
// position.
func (c *Client) Walk(ctx context.Context, oid string) ([]Variable, error) {

	c.g.Context = ctx

	c.log.Debugf("Performing SNMP WALK request on %s", oid)

	pdus, err := c.g.WalkAll(oid)

	if err != nil {

		return nil, fmt.Errorf("snmp walk %s: %w", oid, err)
	}

	vars, err := toVariables(oid, pdus)

	if err != nil {

		return nil, err
	}

	c.log.Debugf("SNMP WALK on %s returned %d values", oid, len(vars))

	return vars, nil
}

// toVariables converts the rows of a walk of oid.
func toVariables(oid string, pdus []gosnmp.SnmpPDU) ([]Variable, error) {

	vars := make([]Variable, 0, len(pdus))

	for _, pdu := range pdus {

		v, ok := toVariable(pdu)

		if !ok {

			return nil, fmt.Errorf("snmp walk %s: %s: %w", oid, strings.TrimPrefix(pdu.Name, "."), ErrNoData)
		}

		vars = append(vars, v)
	}

	return vars, nil
}

// toVariable renders a PDU as text. It reports false for the v2c exception
// types, which carry no value.
func toVariable(pdu gosnmp.SnmpPDU) (Variable, bool) {

	var value string

	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView, gosnmp.Null:
		return Variable{}, false

	case gosnmp.Integer, gosnmp.Counter32, gosnmp.Gauge32, gosnmp.TimeTicks, gosnmp.Counter64, gosnmp.Uinteger32:
		value = gosnmp.ToBigInt(pdu.Value).String()

	default:
		switch v := pdu.Value.(type) {
		case nil:
			return Variable{}, false

		case string:
			value = v

		case []byte:
			value = string(v)

		default:
			value = fmt.Sprintf("%v", v)
		}
	}

	return Variable{OID: strings.TrimPrefix(pdu.Name, "."), Value: value}, true
}
