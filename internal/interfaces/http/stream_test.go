package http

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comandas-api/pkg/logger"
)

func testStreamLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

// deadWriter acepta una cantidad de escrituras y después falla siempre,
// como un socket cuyo peer ya colgó.
type deadWriter struct {
	okWrites int
	writes   int
}

func (w *deadWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes > w.okWrites {
		return 0, errors.New("connection reset by peer")
	}
	return len(p), nil
}

func staticSnapshot(v any) func(context.Context) (any, error) {
	return func(context.Context) (any, error) { return v, nil }
}

// Un cliente muerto en un canal sin cambios debe detectarse por el latido,
// no quedar esperando la próxima notificación con la suscripción viva.
func TestWriteSnapshotStream_LatidoCortaConexionMuerta(t *testing.T) {
	w := bufio.NewWriter(&deadWriter{okWrites: 1}) // solo entra el snapshot inicial
	events := make(chan struct{})                  // canal quieto: jamás llega señal

	done := make(chan struct{})
	go func() {
		defer close(done)
		writeSnapshotStream(context.Background(), w, events, testStreamLogger(),
			"products_changed", staticSnapshot([]string{"p1"}), 5*time.Millisecond)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("el loop del stream no terminó ante la conexión muerta")
	}
}

func TestWriteSnapshotStream_CierreDeEventosTermina(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	events := make(chan struct{})
	close(events)

	writeSnapshotStream(context.Background(), w, events, testStreamLogger(),
		"comandas_changed", staticSnapshot([]string{"c1"}), time.Minute)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "data:"), "solo el snapshot inicial")
	assert.Contains(t, out, `["c1"]`)
}

func TestWriteSnapshotStream_ReenviaSnapshotPorSenal(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	// Cada consulta devuelve un estado distinto: verifica que se reconsulta
	// por señal y no se reusa la foto inicial.
	version := 0
	snapshot := func(context.Context) (any, error) {
		version++
		return map[string]int{"version": version}, nil
	}

	events := make(chan struct{}, 1)
	events <- struct{}{}
	close(events)

	writeSnapshotStream(context.Background(), w, events, testStreamLogger(),
		"orders_changed", snapshot, time.Minute)

	out := buf.String()
	require.Equal(t, 2, strings.Count(out, "data:"))
	assert.Contains(t, out, `{"version":1}`)
	assert.Contains(t, out, `{"version":2}`)
	assert.NotContains(t, out, ": ping", "sin latidos con heartbeat largo")
}
