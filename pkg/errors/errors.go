package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// ErrDuplicateCommitment 数据库唯一约束拦截到的重复预订
// (worker_id, duty_date, shift_window) WHERE status='booked' 部分唯一索引是
// 防止并发重复预订的最终防线，应用层可用性预检仅用于提前给出友好提示
var ErrDuplicateCommitment = errors.New("该人员在此日期/班段已有预订")
