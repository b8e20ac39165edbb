package northbound

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingOwner struct {
	validateErr error
	applyErr    error
	applied     []Delta
}

func (o *recordingOwner) Validate(d Delta) error { return o.validateErr }
func (o *recordingOwner) Apply(d Delta) error {
	if o.applyErr != nil {
		return o.applyErr
	}
	o.applied = append(o.applied, d)
	return nil
}

func TestApplyTransactionRoutesByLongestPrefix(t *testing.T) {
	r := NewRegistry()
	ospf := &recordingOwner{}
	ospfArea := &recordingOwner{}
	r.Register("/protocol/ospf", ospf, ospf)
	r.Register("/protocol/ospf/area/0.0.0.0", ospfArea, ospfArea)

	err := r.ApplyTransaction(Transaction{Deltas: []Delta{
		{Path: "/protocol/ospf/area/0.0.0.0/cost", Op: OpModify, Value: 10},
		{Path: "/protocol/ospf/router-id", Op: OpModify, Value: "1.1.1.1"},
	}})
	require.NoError(t, err)
	require.Len(t, ospfArea.applied, 1)
	require.Len(t, ospf.applied, 1)
}

func TestApplyTransactionFailsWholeBatchOnValidateError(t *testing.T) {
	r := NewRegistry()
	bad := &recordingOwner{validateErr: errors.New("bad value")}
	good := &recordingOwner{}
	r.Register("/protocol/bgp", bad, bad)
	r.Register("/protocol/isis", good, good)

	err := r.ApplyTransaction(Transaction{Deltas: []Delta{
		{Path: "/protocol/isis/system-id", Op: OpModify, Value: "0000.0000.0001"},
		{Path: "/protocol/bgp/as", Op: OpModify, Value: 65000},
	}})
	require.Error(t, err)
	require.Empty(t, good.applied, "no applier should run once any delta fails validation")
}

func TestApplyTransactionNoOwnerIsError(t *testing.T) {
	r := NewRegistry()
	err := r.ApplyTransaction(Transaction{Deltas: []Delta{{Path: "/protocol/unknown/x"}}})
	require.Error(t, err)
}

func TestUnregisterRemovesOwner(t *testing.T) {
	r := NewRegistry()
	o := &recordingOwner{}
	r.Register("/protocol/ospf", o, o)
	r.Unregister("/protocol/ospf")

	err := r.ApplyTransaction(Transaction{Deltas: []Delta{{Path: "/protocol/ospf/router-id"}}})
	require.Error(t, err)
}
