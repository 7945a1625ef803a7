// Package services implements the driving ports: catalog management,
// preference extraction and the per-turn recommendation orchestration.
// Everything here talks to infrastructure through the driven port
// interfaces and stays importable without any adapter.
package services
