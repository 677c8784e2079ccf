package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/Comandas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Comandas-api/pkg/logger"
)

// streamHeartbeat intervalo del comentario de latido SSE. Un cliente
// desconectado solo se detecta al fallar una escritura, así que en canales
// quietos el latido es lo que corta el stream y libera la suscripción (y su
// conexión dedicada del pool) en vez de dejarla colgada hasta el próximo cambio.
const streamHeartbeat = 20 * time.Second

// streamSnapshots sirve un stream SSE de snapshots: envía el estado completo
// al conectar y lo reenvía entero ante cada notificación del canal (mismo
// modelo de suscripción que un listener de colección). El cliente no recibe
// deltas, siempre la foto completa.
func streamSnapshots(
	c *fiber.Ctx,
	watcher *postgres.Watcher,
	log *logger.Logger,
	channel string,
	snapshot func(ctx context.Context) (any, error),
) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sub, err := watcher.Subscribe(ctx, channel)
		if err != nil {
			log.Error().Err(err).Str("channel", channel).Msg("no se pudo abrir la suscripción")
			return
		}
		defer sub.Close()

		writeSnapshotStream(ctx, w, sub.Events, log, channel, snapshot, streamHeartbeat)
	}))
	return nil
}

// writeSnapshotStream escribe el snapshot inicial y después atiende dos
// fuentes: señales de cambio (reenvían el snapshot completo) y el tick de
// latido (escribe un comentario ": ping"). Cualquier escritura o flush fallido
// termina el loop; el retorno dispara la liberación de la suscripción en el
// caller.
func writeSnapshotStream(
	ctx context.Context,
	w *bufio.Writer,
	events <-chan struct{},
	log *logger.Logger,
	channel string,
	snapshot func(ctx context.Context) (any, error),
	heartbeat time.Duration,
) {
	push := func() bool {
		data, err := snapshot(ctx)
		if err != nil {
			log.Error().Err(err).Str("channel", channel).Msg("snapshot del stream")
			return false
		}
		payload, err := json.Marshal(data)
		if err != nil {
			return false
		}
		fmt.Fprintf(w, "data: %s\n\n", payload)
		return w.Flush() == nil
	}

	if !push() {
		return
	}

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
			if !push() {
				return
			}
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			if w.Flush() != nil {
				return
			}
		}
	}
}
