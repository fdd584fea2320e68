package usecase_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/sysparse/internal/application/port/mocks"
	"github.com/bnema/sysparse/internal/application/usecase"
	"github.com/bnema/sysparse/internal/parser/ipaddr"
)

const ipOutput = `1: lo: <LOOPBACK,UP,LOWER_UP> mtu 65536 qdisc noqueue state UNKNOWN group default qlen 1000
    link/loopback 00:00:00:00:00:00 brd 00:00:00:00:00:00
    inet 127.0.0.1/8 scope host lo
       valid_lft forever preferred_lft forever
2: eth0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc fq_codel state UP group default qlen 1000
    link/ether 52:54:00:12:34:56 brd ff:ff:ff:ff:ff:ff
    inet 10.0.0.5/24 brd 10.0.0.255 scope global eth0
       valid_lft forever preferred_lft forever
`

func TestInspectInterfacesUseCase_Execute(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), "ip", "addr", "show").Return([]byte(ipOutput), nil)

	ifaces, err := usecase.NewInspectInterfacesUseCase(runner).Execute(testContext(), "")
	require.NoError(t, err)
	require.Len(t, ifaces, 2)
	assert.Equal(t, "lo", ifaces[0].Name)
	assert.Equal(t, "10.0.0.5/24", ifaces[1].Addresses[0].Prefix.String())
}

func TestInspectInterfacesUseCase_ExecuteFilters(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), "ip", "addr", "show").Return([]byte(ipOutput), nil).Times(2)

	uc := usecase.NewInspectInterfacesUseCase(runner)

	ifaces, err := uc.Execute(testContext(), "eth0")
	require.NoError(t, err)
	require.Len(t, ifaces, 1)
	assert.Equal(t, "eth0", ifaces[0].Name)

	_, err = uc.Execute(testContext(), "wlan0")
	assert.ErrorIs(t, err, usecase.ErrInterfaceNotFound)
}

func TestInspectInterfacesUseCase_RunnerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	boom := errors.New("ip not found")
	runner.EXPECT().Run(gomock.Any(), "ip", "addr", "show").Return(nil, boom)

	_, err := usecase.NewInspectInterfacesUseCase(runner).Execute(testContext(), "")
	assert.ErrorIs(t, err, boom)
}

func TestInspectInterfacesUseCase_FromReaderParseError(t *testing.T) {
	uc := usecase.NewInspectInterfacesUseCase(nil)
	_, err := uc.FromReader(testContext(), strings.NewReader("    inet 10.0.0.1/8\n"), "")
	assert.ErrorIs(t, err, ipaddr.ErrOrphanLine)
}
