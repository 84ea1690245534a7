package wifinina

import "testing"

func TestNetworkInfo(t *testing.T) {
	ops := scriptPair(
		scriptSend(cmdGetIPAddress, false, nil),
		scriptRecv(cmdGetIPAddress, false, [][]byte{
			{192, 168, 1, 42},
			{255, 255, 255, 0},
			{192, 168, 1, 1},
		}),
	)
	d, bus := newTestDriver(t, ops, busyIdleAck(2))

	info, err := d.NetworkInfo()
	if err != nil {
		t.Fatalf("NetworkInfo: %v", err)
	}
	if info.IP != ([4]byte{192, 168, 1, 42}) {
		t.Fatalf("IP = %v", info.IP)
	}
	if info.Netmask != ([4]byte{255, 255, 255, 0}) {
		t.Fatalf("Netmask = %v", info.Netmask)
	}
	if info.Gateway != ([4]byte{192, 168, 1, 1}) {
		t.Fatalf("Gateway = %v", info.Gateway)
	}
	bus.Done()
}

func TestResolveHostNameFound(t *testing.T) {
	ops := scriptPair(
		scriptPair(
			scriptSend(cmdRequestHostByName, false, [][]byte{[]byte("example.com")}),
			scriptRecv(cmdRequestHostByName, false, [][]byte{{0x01}}),
		),
		scriptPair(
			scriptSend(cmdGetHostByName, false, nil),
			scriptRecv(cmdGetHostByName, false, [][]byte{{93, 184, 216, 34}}),
		),
	)
	d, bus := newTestDriver(t, ops, busyIdleAck(4))

	ip, ok, err := d.ResolveHostName("example.com")
	if err != nil {
		t.Fatalf("ResolveHostName: %v", err)
	}
	if !ok {
		t.Fatalf("ok = false, want true")
	}
	if ip != ([4]byte{93, 184, 216, 34}) {
		t.Fatalf("ip = %v", ip)
	}
	bus.Done()
}

func TestResolveHostNameNotFound(t *testing.T) {
	ops := scriptPair(
		scriptPair(
			scriptSend(cmdRequestHostByName, false, [][]byte{[]byte("nowhere.invalid")}),
			scriptRecv(cmdRequestHostByName, false, [][]byte{{0x01}}),
		),
		scriptPair(
			scriptSend(cmdGetHostByName, false, nil),
			scriptRecv(cmdGetHostByName, false, [][]byte{{0, 0, 0, 0}}),
		),
	)
	d, bus := newTestDriver(t, ops, busyIdleAck(4))

	_, ok, err := d.ResolveHostName("nowhere.invalid")
	if err != nil {
		t.Fatalf("ResolveHostName: %v", err)
	}
	if ok {
		t.Fatalf("ok = true, want false")
	}
	bus.Done()
}

func TestPing(t *testing.T) {
	ops := scriptPair(
		scriptSend(cmdPing, false, [][]byte{{10, 0, 0, 1}, {64}}),
		scriptRecv(cmdPing, false, [][]byte{{20, 0}}),
	)
	d, bus := newTestDriver(t, ops, busyIdleAck(2))

	ms, err := d.Ping([4]byte{10, 0, 0, 1}, 64)
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if ms != 20 {
		t.Fatalf("Ping = %d, want 20", ms)
	}
	bus.Done()
}
