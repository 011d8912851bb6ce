package xrotate

// Command 记录的命令类型
type Command int

const (
	// CommandRecord 普通日志行
	CommandRecord Command = iota

	// CommandFlush 刷新当前文件组
	CommandFlush

	// CommandShutdown 进程退出前的最后一次刷新
	CommandShutdown
)

// String 返回命令的字符串表示
func (c Command) String() string {
	switch c {
	case CommandRecord:
		return "record"
	case CommandFlush:
		return "flush"
	case CommandShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Record 分发器投递给 Sink 的一条记录
//
// Command 为 CommandRecord 时 Line 是已格式化、以换行结尾的日志行。
type Record struct {
	Category Category
	Line     string
	Command  Command
}

// Sink 批量消费日志记录的输出端
//
// 由分发器的单个工作协程调用，实现无需并发安全。
// Process 返回的错误视为日志管道不可用。
type Sink interface {
	// Process 按顺序处理一批记录
	Process(batch []Record) error

	// Close 刷新并释放资源
	Close() error
}
