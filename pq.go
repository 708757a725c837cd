package bestfirst

// searchNode is a frontier entry. index points into the path history and is
// never used for state identity.
type searchNode[S any, H Cost] struct {
	state    S
	distance int
	estimate H
	index    int
}

// priorityQueue orders nodes by estimate only, smallest first.
// Ties fall to heap order.
type priorityQueue[S any, H Cost] []*searchNode[S, H]

func (queue priorityQueue[S, H]) Len() int           { return len(queue) }
func (queue priorityQueue[S, H]) Less(i, j int) bool { return queue[i].estimate < queue[j].estimate }
func (queue priorityQueue[S, H]) Swap(i, j int)      { queue[i], queue[j] = queue[j], queue[i] }

func (queue *priorityQueue[S, H]) Push(x any) {
	*queue = append(*queue, x.(*searchNode[S, H]))
}

func (queue *priorityQueue[S, H]) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	*queue = oldQueue[:n-1]
	return item
}
