package server

import (
	"context"
)

// trainer 启动时准备好模型，之后按请求强制重新训练
func (s *serverImpl) trainer(ctx context.Context) {
	s.logger.Println("模型训练线程启动")

	if _, err := s.predictor.Load(ctx); err != nil {
		s.logger.Printf("模型准备失败，将在第一次预测时重试：%v\n", err)
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Println("模型训练线程退出")
			return
		case <-s.executeTrain:
			s.logger.Println("重新训练模型开始")
			if _, err := s.predictor.Train(ctx, true); err != nil {
				s.logger.Printf("重新训练模型出错：%v\n", err)
				continue
			}
			s.logger.Println("重新训练模型完成")
		}
	}
}

// Retrain 请求后台重新训练。已有训练请求在排队时返回false
func (s *serverImpl) Retrain() bool {
	select {
	case s.executeTrain <- struct{}{}:
		return true
	default:
		return false
	}
}
