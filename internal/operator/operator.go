package operator

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cesarberbelbr/household-finance-manager/internal/operator/actions"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage *storage.Storage
	queue   chan ActionItem
}

func NewOperator(s *storage.Storage, queue chan ActionItem) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		item.response <- ActionItemResponse{err: o.processItem(item)}
	}
}

// processItem runs one action inside its own write transaction.
func (o *Operator) processItem(item ActionItem) error {
	if err := item.ctx.Err(); err != nil {
		return err
	}

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		return err
	}

	if err = item.action.Perform(item.ctx, writer); err != nil {
		if rbErr := writer.Rollback(item.ctx); rbErr != nil {
			logrus.WithFields(logrus.Fields{
				"action": fmt.Sprintf("%T", item.action),
				"error":  rbErr,
			}).Error("Operator.Rollback.Error")
		}
		return err
	}

	if err = writer.Commit(item.ctx); err != nil {
		logrus.WithFields(logrus.Fields{
			"action": fmt.Sprintf("%T", item.action),
			"error":  err,
		}).Error("Operator.Commit.Error")
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
