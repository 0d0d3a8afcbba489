package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	brpopTimeout   = 5 * time.Second
	reconnectDelay = 2 * time.Second
)

// runService consumes analysis jobs from the Redis list queue:<queue> until
// ctx is cancelled, reconnecting whenever the connection drops.
func runService(ctx context.Context, r *runner, redisURL, queue string) error {
	target, err := parseRedisURL(redisURL)
	if err != nil {
		return err
	}
	key := "queue:" + queue
	log := logrus.WithFields(logrus.Fields{"redis": target.Addr, "queue": key})

	for ctx.Err() == nil {
		conn, err := dialRedis(ctx, target)
		if err != nil {
			log.WithError(err).Warnf("retrying in %s", reconnectDelay)
			sleepContext(ctx, reconnectDelay)
			continue
		}
		log.Info("waiting for jobs")

		err = r.consume(ctx, conn, key)
		conn.Close()
		if err != nil && ctx.Err() == nil {
			log.WithError(err).Warn("redis connection lost")
			sleepContext(ctx, time.Second)
		}
	}
	log.Info("service stopped")
	return nil
}

func (r *runner) consume(ctx context.Context, conn *redisConn, key string) error {
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for ctx.Err() == nil {
		_, payload, err := conn.brpop(key, brpopTimeout)
		if err != nil {
			return err
		}
		if payload == "" {
			continue // timeout
		}
		r.handleJob(ctx, payload)
	}
	return nil
}

func (r *runner) handleJob(ctx context.Context, payload string) {
	job, err := parseJob(payload)
	if err != nil {
		logrus.WithError(err).Warn("skipping job")
		return
	}
	if _, err := r.run(ctx, job.Kind, job.Input); err != nil {
		logrus.WithError(err).WithField("jid", job.JID).Error("job failed")
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
